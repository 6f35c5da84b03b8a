package elasticfx

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/yurykabanov/es-retention/pkg/elastic"
)

const (
	ConfigElasticURL      = "url"
	ConfigElasticUsername = "username"
	ConfigElasticPassword = "password"
)

func ClientConfigProvider(v *viper.Viper) (*elastic.Config, error) {
	config := &elastic.Config{
		URL:      v.GetString(ConfigElasticURL),
		Username: v.GetString(ConfigElasticUsername),
		Password: v.GetString(ConfigElasticPassword),
	}

	if config.URL == "" {
		return nil, errors.New("--url is required")
	}

	if (config.Username == "") != (config.Password == "") {
		return nil, errors.New("both --username and --password must be provided for basic auth")
	}

	return config, nil
}

func Client(config *elastic.Config, logger *logrus.Logger) (*elastic.Client, error) {
	logger.WithField("url", config.URL).Debug("Connecting to elasticsearch")

	client, err := elastic.New(config, logger)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to create elasticsearch client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		return nil, errors.Wrap(err, "Unable to ping elasticsearch")
	}

	return client, nil
}
