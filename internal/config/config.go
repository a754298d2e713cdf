package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string `yaml:"env" env-default:"local"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env-default:""`
		AdminId int64  `yaml:"admin_id" env-default:"0"`
		BotName string `yaml:"bot_name" env-default:"EnrollHubBot"`
		Enabled bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"telegram"`
	OpenAI struct {
		ApiKey  string        `yaml:"api_key" env-default:""`
		Model   string        `yaml:"model" env-default:"gpt-4o"`
		Timeout time.Duration `yaml:"timeout" env-default:"45s"`
	} `yaml:"openai"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:"admin"`
		Password string `yaml:"password" env-default:"pass"`
		Database string `yaml:"database" env-default:"enrollment"`
	} `yaml:"mongo"`
	Admin struct {
		Email        string `yaml:"email" env:"ADMIN_EMAIL" env-default:""`
		ClientID     string `yaml:"client_id" env-default:""`
		ClientSecret string `yaml:"client_secret" env-default:""`
		RedirectURL  string `yaml:"redirect_url" env-default:"http://127.0.0.1:9100/api/v1/auth/callback"`
	} `yaml:"admin"`
	Files struct {
		Secret string        `yaml:"secret" env-default:""`
		UrlTTL time.Duration `yaml:"url_ttl" env-default:"15m"`
	} `yaml:"files"`
	Catalog struct {
		Path string `yaml:"path" env-default:""`
	} `yaml:"catalog"`
	Enrollment struct {
		SubmitTimeout   time.Duration `yaml:"submit_timeout" env-default:"2m"`
		MaxScreenshotMB int64         `yaml:"max_screenshot_mb" env-default:"8"`
		SessionTTL      time.Duration `yaml:"session_ttl" env-default:"72h"`
	} `yaml:"enrollment"`
	Listen struct {
		BindIP  string        `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port    string        `yaml:"port" env-default:"9100"`
		Timeout time.Duration `yaml:"timeout" env-default:"90s"`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
