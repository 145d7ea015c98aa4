package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/vcorps/corps-panel/database"
	"github.com/vcorps/corps-panel/database/model"
	"github.com/vcorps/corps-panel/logger"
	"github.com/vcorps/corps-panel/util/common"
	"github.com/vcorps/corps-panel/util/random"
	"github.com/vcorps/corps-panel/web/entity"
)

var defaultValueMap = map[string]string{
	"webListen":          "",
	"webPort":            "2054",
	"webBasePath":        "/",
	"secret":             random.Seq(32),
	"sessionMaxAge":      "60",
	"pageSize":           "50",
	"timeLocation":       "Africa/Nairobi",
	"twoFactorEnable":    "false",
	"twoFactorToken":     "",
	"loginRequireActive": "false",
	"reportRuntime":      "@daily",
	"cpuThreshold":       "80",
	"panelLang":          "en-US",
}

// SettingService reads and writes panel settings stored in the database,
// falling back to defaults for keys that were never saved.
type SettingService struct{}

func (s *SettingService) GetAllSetting() (*entity.AllSetting, error) {
	webListen, err := s.GetListen()
	if err != nil {
		return nil, err
	}
	webPort, err := s.GetPort()
	if err != nil {
		return nil, err
	}
	webBasePath, err := s.GetBasePath()
	if err != nil {
		return nil, err
	}
	sessionMaxAge, err := s.GetSessionMaxAge()
	if err != nil {
		return nil, err
	}
	pageSize, err := s.GetPageSize()
	if err != nil {
		return nil, err
	}
	timeLocation, err := s.getString("timeLocation")
	if err != nil {
		return nil, err
	}
	twoFactorEnable, err := s.GetTwoFactorEnable()
	if err != nil {
		return nil, err
	}
	loginRequireActive, err := s.GetLoginRequireActive()
	if err != nil {
		return nil, err
	}

	return &entity.AllSetting{
		WebListen:          webListen,
		WebPort:            webPort,
		WebBasePath:        webBasePath,
		SessionMaxAge:      sessionMaxAge,
		PageSize:           pageSize,
		TimeLocation:       timeLocation,
		TwoFactorEnable:    twoFactorEnable,
		LoginRequireActive: loginRequireActive,
	}, nil
}

func (s *SettingService) UpdateAllSetting(allSetting *entity.AllSetting) error {
	if err := allSetting.CheckValid(); err != nil {
		return err
	}

	return common.Combine(
		s.SetListen(allSetting.WebListen),
		s.SetPort(allSetting.WebPort),
		s.SetBasePath(allSetting.WebBasePath),
		s.setInt("sessionMaxAge", allSetting.SessionMaxAge),
		s.setInt("pageSize", allSetting.PageSize),
		s.setString("timeLocation", allSetting.TimeLocation),
		s.setBool("twoFactorEnable", allSetting.TwoFactorEnable),
		s.setBool("loginRequireActive", allSetting.LoginRequireActive),
	)
}

func (s *SettingService) ResetSettings() error {
	db := database.GetDB()
	return db.Where("1 = 1").Delete(model.Setting{}).Error
}

func (s *SettingService) getSetting(key string) (*model.Setting, error) {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) saveSetting(key string, value string) error {
	setting, err := s.getSetting(key)
	db := database.GetDB()
	if database.IsNotFound(err) {
		return db.Create(&model.Setting{
			Key:   key,
			Value: value,
		}).Error
	} else if err != nil {
		return err
	}
	setting.Key = key
	setting.Value = value
	return db.Save(setting).Error
}

func (s *SettingService) getString(key string) (string, error) {
	setting, err := s.getSetting(key)
	if database.IsNotFound(err) {
		value, ok := defaultValueMap[key]
		if !ok {
			return "", common.NewErrorf("key <%v> not in defaultValueMap", key)
		}
		return value, nil
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) setString(key string, value string) error {
	return s.saveSetting(key, value)
}

func (s *SettingService) getBool(key string) (bool, error) {
	str, err := s.getString(key)
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(str)
}

func (s *SettingService) setBool(key string, value bool) error {
	return s.saveSetting(key, strconv.FormatBool(value))
}

func (s *SettingService) getInt(key string) (int, error) {
	str, err := s.getString(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

func (s *SettingService) setInt(key string, value int) error {
	return s.saveSetting(key, strconv.Itoa(value))
}

func (s *SettingService) GetListen() (string, error) {
	return s.getString("webListen")
}

func (s *SettingService) SetListen(ip string) error {
	return s.setString("webListen", ip)
}

func (s *SettingService) GetPort() (int, error) {
	return s.getInt("webPort")
}

func (s *SettingService) SetPort(port int) error {
	return s.setInt("webPort", port)
}

func (s *SettingService) GetSessionMaxAge() (int, error) {
	return s.getInt("sessionMaxAge")
}

func (s *SettingService) GetPageSize() (int, error) {
	return s.getInt("pageSize")
}

func (s *SettingService) GetTwoFactorEnable() (bool, error) {
	return s.getBool("twoFactorEnable")
}

func (s *SettingService) SetTwoFactorEnable(value bool) error {
	return s.setBool("twoFactorEnable", value)
}

func (s *SettingService) GetTwoFactorToken() (string, error) {
	return s.getString("twoFactorToken")
}

func (s *SettingService) SetTwoFactorToken(token string) error {
	return s.setString("twoFactorToken", token)
}

func (s *SettingService) GetLoginRequireActive() (bool, error) {
	return s.getBool("loginRequireActive")
}

func (s *SettingService) SetLoginRequireActive(value bool) error {
	return s.setBool("loginRequireActive", value)
}

func (s *SettingService) GetReportRuntime() (string, error) {
	return s.getString("reportRuntime")
}

func (s *SettingService) GetCpuThreshold() (int, error) {
	return s.getInt("cpuThreshold")
}

func (s *SettingService) GetPanelLang() (string, error) {
	return s.getString("panelLang")
}

func (s *SettingService) GetSecret() ([]byte, error) {
	secret, err := s.getString("secret")
	if secret == defaultValueMap["secret"] {
		err := s.saveSetting("secret", secret)
		if err != nil {
			logger.Warning("save secret failed:", err)
		}
	}
	return []byte(secret), err
}

func (s *SettingService) SetBasePath(basePath string) error {
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return s.setString("webBasePath", basePath)
}

func (s *SettingService) GetBasePath() (string, error) {
	basePath, err := s.getString("webBasePath")
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath, nil
}

func (s *SettingService) GetTimeLocation() (*time.Location, error) {
	l, err := s.getString("timeLocation")
	if err != nil {
		return nil, err
	}
	location, err := time.LoadLocation(l)
	if err != nil {
		defaultLocation := defaultValueMap["timeLocation"]
		logger.Errorf("location <%v> not exist, using default location: %v", l, defaultLocation)
		return time.LoadLocation(defaultLocation)
	}
	return location, nil
}
