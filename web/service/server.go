package service

import (
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/atomic"

	"github.com/vcorps/corps-panel/logger"
)

// Status reports host and process health for the admin view.
type Status struct {
	T        time.Time `json:"-"`
	Cpu      float64   `json:"cpu"`
	CpuCores int       `json:"cpuCores"`
	Mem      struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Loads  []float64 `json:"loads"`
	Uptime uint64    `json:"uptime"`
}

// LastCpuPercent is the most recent CPU sample, shared with the CPU watch job.
var LastCpuPercent = atomic.NewFloat64(0)

// ServerService collects host status via gopsutil.
type ServerService struct{}

func (s *ServerService) GetStatus() *Status {
	status := &Status{T: time.Now()}

	percents, err := cpu.Percent(0, false)
	if err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
		LastCpuPercent.Store(percents[0])
	}

	cores, err := cpu.Counts(false)
	if err != nil {
		logger.Warning("get cpu cores count failed:", err)
	} else {
		status.CpuCores = cores
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	avgState, err := load.Avg()
	if err != nil {
		logger.Warning("get load avg failed:", err)
	} else {
		status.Loads = []float64{avgState.Load1, avgState.Load5, avgState.Load15}
	}

	upTime, err := host.Uptime()
	if err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = upTime
	}

	return status
}
