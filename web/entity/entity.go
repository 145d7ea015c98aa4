// Package entity defines data structures used by the web layer of corps-panel.
package entity

import (
	"math"
	"net"
	"strings"
	"time"

	"github.com/vcorps/corps-panel/util/common"
)

// Msg represents a standard API response with success status, message text and
// optional data object.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// AllSetting contains the configurable panel settings.
type AllSetting struct {
	WebListen          string `json:"webListen" form:"webListen"`
	WebPort            int    `json:"webPort" form:"webPort"`
	WebBasePath        string `json:"webBasePath" form:"webBasePath"`
	SessionMaxAge      int    `json:"sessionMaxAge" form:"sessionMaxAge"` // minutes
	PageSize           int    `json:"pageSize" form:"pageSize"`
	TimeLocation       string `json:"timeLocation" form:"timeLocation"`
	TwoFactorEnable    bool   `json:"twoFactorEnable" form:"twoFactorEnable"`
	LoginRequireActive bool   `json:"loginRequireActive" form:"loginRequireActive"`
}

// CheckValid validates the settings before they are persisted.
func (s *AllSetting) CheckValid() error {
	if s.WebListen != "" {
		ip := net.ParseIP(s.WebListen)
		if ip == nil {
			return common.NewError("web listen is not valid ip:", s.WebListen)
		}
	}

	if s.WebPort <= 0 || s.WebPort > math.MaxUint16 {
		return common.NewError("web port is not a valid port:", s.WebPort)
	}

	if !strings.HasPrefix(s.WebBasePath, "/") {
		s.WebBasePath = "/" + s.WebBasePath
	}
	if !strings.HasSuffix(s.WebBasePath, "/") {
		s.WebBasePath += "/"
	}

	_, err := time.LoadLocation(s.TimeLocation)
	if err != nil {
		return common.NewError("time location not exist:", s.TimeLocation)
	}

	return nil
}
