package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"lineworks.id/machine-monitor-service/pkg/monitor"
)

type RestfulServer struct {
	Server           *gin.Engine
	Mon              *monitor.Monitor
	Pipeline         *monitor.Pipeline
	RateLimiterStore *RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(clientKey string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(clientKey)
	}
}

func (rs *RestfulServer) CheckClientLimiter(clientKey string) bool {
	limiter := rs.GetLimiter(clientKey)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	machines := rs.Server.Group("/machines")
	{
		machines.GET("", rs.ListMachines)
		machines.POST("", rs.AddMachine)
		machines.PUT("/:id", rs.UpdateMachine)
		machines.DELETE("/:id", rs.DeleteMachine)
	}

	rs.Server.GET("/summary", rs.GetSummary)

	mon := rs.Server.Group("/monitor")
	{
		mon.GET("/status", rs.MonitorStatus)
		mon.POST("/start", rs.StartMonitor)
		mon.POST("/stop", rs.StopMonitor)
	}

	rs.Server.POST("/exports/finalize", rs.FinalizeExport)
}
