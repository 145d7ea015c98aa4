package job

import (
	"strconv"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"

	"github.com/vcorps/corps-panel/logger"
	"github.com/vcorps/corps-panel/util/common"
	"github.com/vcorps/corps-panel/web/service"
)

// CheckCpuJob samples CPU usage and logs a warning when it exceeds the
// configured threshold.
type CheckCpuJob struct {
	settingService service.SettingService
}

// NewCheckCpuJob creates a new CPU monitoring job instance.
func NewCheckCpuJob() *CheckCpuJob {
	return new(CheckCpuJob)
}

func (j *CheckCpuJob) Run() {
	defer common.Recover("cpu check job")

	threshold, err := j.settingService.GetCpuThreshold()
	if err != nil || threshold <= 0 {
		return
	}

	percent, err := cpu.Percent(1*time.Second, false)
	if err != nil || len(percent) == 0 {
		return
	}
	service.LastCpuPercent.Store(percent[0])

	if percent[0] > float64(threshold) {
		logger.Warningf("cpu usage %s%% exceeds threshold %d%%",
			strconv.FormatFloat(percent[0], 'f', 2, 64), threshold)
	}
}
