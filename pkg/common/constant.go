package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyMonDBType string = "MON_DB_TYPE"
	EnvKeyMonDbPath string = "MON_DB_PATH"

	EnvKeyMonHttpHostPort string = "MON_HTTP_HOST_PORT"

	EnvKeyMonSerialPort string = "MON_SERIAL_PORT"
	EnvKeyMonSerialBaud string = "MON_SERIAL_BAUD"

	EnvKeyMonExportDir string = "MON_EXPORT_DIR"

	EnvKeyMonDefaultRate  string = "MON_DEFAULT_RATE"
	EnvKeyMonDefaultBurst string = "MON_DEFAULT_BURST"

	LoggerNameMonitorCore   string = "monitor_core"
	LoggerNameSerialReader  string = "serial_reader"
	LoggerNameRestfulServer string = "restful_server"

	LoggerFieldMonCategory      string = "category"
	LoggerCategoryMonParser     string = "parser"
	LoggerCategoryMonDirectory  string = "directory"
	LoggerCategoryMonWriter     string = "writer"
	LoggerCategoryMonExport     string = "export"
	LoggerCategoryMonCoordinate string = "coordinator"
)
