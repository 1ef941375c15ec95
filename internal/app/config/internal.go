package config

import "time"

type InternalConfig struct {
	App      App
	JWT      AppJWT
	Momo     AppMomo
	Booking  AppBooking
	Worker   AppWorker
	Doctor   AppDoctor
	MongoDB  AppMongoDB
	RabbitMQ AppRabbitMQ
}

type App struct {
	Env                     string
	Port                    string
	Version                 string
	Address                 string
	Timezone                string
	EndpointPrefix          string
	AdminAPIKey             string
	MaxRequests             int
	ShutdownTimeout         int
	RequestTimeoutInSeconds int
}

type AppJWT struct {
	Secret        string
	ExpTimeInHour int
}

type AppMomo struct {
	PartnerCode             string
	AccessKey               string
	SecretKey               string
	RedirectUrl             string
	IpnUrl                  string
	Endpoint                string
	Lang                    string
	RequestTimeoutInSeconds int
	MaxRequestsPerSecond    int
	Burst                   int
}

type AppBooking struct {
	LockTTL           time.Duration
	LockRetryAttempts int
	LockRetryInterval time.Duration
	// per patient, zero disables the limit
	AttemptsPerWindow int
	AttemptWindow     time.Duration
}

type AppWorker struct {
	ReconcilerEnabled  bool
	ReconcilerCronSpec string
	ReconcilerLockTTL  time.Duration
}

type AppDoctor struct {
	// ListCacheTTL bounds how stale the public doctor list may be on other
	// instances, zero disables the cache.
	ListCacheTTL time.Duration
}

type AppMongoDB struct {
	UseTransaction bool
}

type AppRabbitMQ struct {
	PublishEvents       bool
	AppointmentExchange string
}
