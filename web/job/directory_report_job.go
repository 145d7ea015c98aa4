// Package job contains scheduled background jobs for the corps-panel service.
package job

import (
	"github.com/vcorps/corps-panel/logger"
	"github.com/vcorps/corps-panel/util/common"
	"github.com/vcorps/corps-panel/web/service"
)

// DirectoryReportJob periodically logs directory and registry counts. It only
// reads; no scheduled job ever mutates the directory.
type DirectoryReportJob struct {
	userService      service.UserService
	workerService    service.WorkerService
	dashboardService service.DashboardService
}

// NewDirectoryReportJob creates a new directory report job instance.
func NewDirectoryReportJob() *DirectoryReportJob {
	return new(DirectoryReportJob)
}

func (j *DirectoryReportJob) Run() {
	defer common.Recover("directory report job")

	dashboard, err := j.dashboardService.GetDashboard("admin")
	if err != nil || dashboard.Admin == nil {
		logger.Warning("directory report: get stats failed:", err)
		return
	}

	workers, err := j.workerService.GetWorkers(service.WorkerFilter{})
	if err != nil {
		logger.Warning("directory report: get workers failed:", err)
		return
	}

	logger.Infof("directory report: %d users (%d active, %d inactive, %d admins), %d workers",
		dashboard.Admin.Total, dashboard.Admin.Active, dashboard.Admin.Inactive, dashboard.Admin.Admins, len(workers))
}
