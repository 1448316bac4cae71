package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	OrderCsvFolderPath string `json:"orderCsvFolderPath"`
	DownloadFolderPath string `json:"downloadFolderPath"`
	BillingClosingDay  int    `json:"billingClosingDay"`
	PortalUserID       string `json:"portalUserID"`
	PortalPassword     string `json:"portalPassword"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./bentokan_config.json"

func LoadConfig() (Config, error) {
	mu.RLock()
	defer mu.RUnlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{
				BillingClosingDay: 25,
			}, nil
		}
		return Config{}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return Config{}, err
	}
	cfg = tempCfg

	if cfg.BillingClosingDay == 0 {
		cfg.BillingClosingDay = 25
	}

	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if newCfg.BillingClosingDay == 0 {
		newCfg.BillingClosingDay = 25
	}

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
