package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"lineworks.id/machine-monitor-service/pkg/models"
	"lineworks.id/machine-monitor-service/pkg/monitor"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type MachineRequest struct {
	MachineCode    int    `json:"machine_code"`
	Name           string `json:"name"`
	LineProduction string `json:"line_production"`
	Process        string `json:"process"`
	Remark         string `json:"remark"`
}

var machineRequestSchema = z.Struct(z.Shape{
	"MachineCode":    z.Int().Required(),
	"Name":           z.String().Required(),
	"LineProduction": z.String().Required(),
	"Process":        z.String().Required(),
	"Remark":         z.String(),
})

func (rs *RestfulServer) ListMachines(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	machines, err := rs.Mon.Directory.ListMachines()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, machines)
}

func (rs *RestfulServer) AddMachine(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req MachineRequest
	if err := machineRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	machine := models.Machine{
		MachineCode:    req.MachineCode,
		Name:           req.Name,
		LineProduction: req.LineProduction,
		Process:        req.Process,
		Remark:         req.Remark,
	}

	if err := rs.Mon.Directory.AddMachine(&machine); err != nil {
		if errors.Is(err, monitor.ErrDuplicateCode) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, machine)
}

func (rs *RestfulServer) UpdateMachine(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	dbID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid machine id"})
		return
	}

	var req MachineRequest
	if err := machineRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	machine := models.Machine{
		ID:             dbID,
		MachineCode:    req.MachineCode,
		Name:           req.Name,
		LineProduction: req.LineProduction,
		Process:        req.Process,
		Remark:         req.Remark,
	}

	if err := rs.Mon.Directory.UpdateMachine(&machine); err != nil {
		if errors.Is(err, monitor.ErrDuplicateCode) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, machine)
}

func (rs *RestfulServer) DeleteMachine(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	dbID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid machine id"})
		return
	}

	if err := rs.Mon.Directory.DeleteMachine(dbID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) GetSummary(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	summary, err := rs.Mon.GetLineSummary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (rs *RestfulServer) MonitorStatus(c *gin.Context) {
	if rs.Pipeline == nil {
		c.JSON(http.StatusOK, gin.H{"status": "not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": rs.Pipeline.Status()})
}

func (rs *RestfulServer) StartMonitor(c *gin.Context) {
	if rs.Pipeline == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no serial device configured"})
		return
	}

	if err := rs.Pipeline.Start(); err != nil {
		if errors.Is(err, monitor.ErrAlreadyRunning) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": rs.Pipeline.Status()})
}

func (rs *RestfulServer) StopMonitor(c *gin.Context) {
	if rs.Pipeline == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no serial device configured"})
		return
	}

	rs.Pipeline.Stop()
	c.JSON(http.StatusOK, gin.H{"status": rs.Pipeline.Status()})
}

type FinalizeRequest struct {
	ShiftName string `json:"shift_name"`
	ShiftDate string `json:"shift_date"`
}

var finalizeRequestSchema = z.Struct(z.Shape{
	"ShiftName": z.String().Required(),
	"ShiftDate": z.String().Required(),
})

func (rs *RestfulServer) FinalizeExport(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req FinalizeRequest
	if err := finalizeRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	switch req.ShiftName {
	case monitor.ShiftName1, monitor.ShiftName2, monitor.ShiftName3:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown shift name"})
		return
	}

	shiftDate, err := time.ParseInLocation("2006-01-02", req.ShiftDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shift_date must be yyyy-MM-dd"})
		return
	}

	if err := rs.Mon.Exporter.Finalize(req.ShiftName, shiftDate); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusOK)
}
