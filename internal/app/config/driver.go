package config

type DriverConfig struct {
	MongoDB  MongoDB
	Redis    Redis
	Logger   Logger
	RabbitMQ RabbitMQ
}

// MongoDB holds the document store settings. URI wins over the host fields
// so replica sets (required for transactions) can be addressed.
type MongoDB struct {
	URI                     string
	Host                    string
	Port                    string
	Username                string
	Password                string
	DbName                  string
	ConnectTimeoutInSeconds int
	MaxPoolSize             uint64
}

type Redis struct {
	Host     string
	Port     string
	Password string
	DB       int
	PoolSize int
}

type Logger struct {
	Level               string
	OutputFileName      string
	OutputErrorFileName string
}

type RabbitMQ struct {
	Host               string
	Port               string
	Username           string
	Password           string
	VHost              string
	HeartbeatInSeconds int
}
