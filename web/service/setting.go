package service

import (
	"strconv"
	"time"

	"user-admin/database"
	"user-admin/database/model"
	"user-admin/logger"
	"user-admin/util/common"
	"user-admin/util/random"
)

var defaultValueMap = map[string]string{
	"webListen":       "",
	"webPort":         "8080",
	"webCertFile":     "",
	"webKeyFile":      "",
	"webBasePath":     "/",
	"secret":          "",
	"sessionMaxAge":   "60",
	"timeLocation":    "Local",
	"twoFactorEnable": "false",
	"twoFactorToken":  "",
}

// SettingService reads and writes runtime-tunable settings from the
// key/value settings table, falling back to built-in defaults.
type SettingService struct{}

func (s *SettingService) getString(key string) (string, error) {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if database.IsNotFound(err) {
		value, ok := defaultValueMap[key]
		if !ok {
			return "", common.NewErrorf("key <%v> not in settings", key)
		}
		return value, nil
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) setString(key string, value string) error {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if database.IsNotFound(err) {
		return db.Create(&model.Setting{Key: key, Value: value}).Error
	} else if err != nil {
		return err
	}
	setting.Value = value
	return db.Save(setting).Error
}

func (s *SettingService) getInt(key string) (int, error) {
	str, err := s.getString(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

func (s *SettingService) getBool(key string) (bool, error) {
	str, err := s.getString(key)
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(str)
}

func (s *SettingService) GetListen() (string, error) {
	return s.getString("webListen")
}

func (s *SettingService) GetPort() (int, error) {
	return s.getInt("webPort")
}

func (s *SettingService) GetCertFile() (string, error) {
	return s.getString("webCertFile")
}

func (s *SettingService) GetKeyFile() (string, error) {
	return s.getString("webKeyFile")
}

func (s *SettingService) GetBasePath() (string, error) {
	basePath, err := s.getString("webBasePath")
	if err != nil {
		return "", err
	}
	if basePath == "" {
		basePath = "/"
	}
	if basePath[len(basePath)-1] != '/' {
		basePath += "/"
	}
	return basePath, nil
}

// GetSecret returns the cookie-signing secret, generating and persisting
// one on first use so sessions survive restarts.
func (s *SettingService) GetSecret() ([]byte, error) {
	secret, err := s.getString("secret")
	if err != nil {
		return nil, err
	}
	if secret == "" {
		secret = random.Seq(32)
		if err := s.setString("secret", secret); err != nil {
			return nil, err
		}
		logger.Info("generated new session secret")
	}
	return []byte(secret), nil
}

// GetSessionMaxAge returns the session lifetime in minutes.
func (s *SettingService) GetSessionMaxAge() (int, error) {
	return s.getInt("sessionMaxAge")
}

func (s *SettingService) GetTimeLocation() (*time.Location, error) {
	str, err := s.getString("timeLocation")
	if err != nil {
		return nil, err
	}
	location, err := time.LoadLocation(str)
	if err != nil {
		defaultLocation := defaultValueMap["timeLocation"]
		logger.Errorf("invalid time location %s, using %s", str, defaultLocation)
		return time.LoadLocation(defaultLocation)
	}
	return location, nil
}

func (s *SettingService) GetTwoFactorEnable() (bool, error) {
	return s.getBool("twoFactorEnable")
}

func (s *SettingService) SetTwoFactorEnable(value bool) error {
	return s.setString("twoFactorEnable", strconv.FormatBool(value))
}

func (s *SettingService) GetTwoFactorToken() (string, error) {
	return s.getString("twoFactorToken")
}

func (s *SettingService) SetTwoFactorToken(value string) error {
	return s.setString("twoFactorToken", value)
}
