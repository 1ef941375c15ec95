package config

import (
	"clinic-service/internal/pkg/utils"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:                    utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:                    utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:                  utils.GetEnvString("MONGODB_DB_NAME", "clinic"),
			Username:                utils.GetEnvString("MONGODB_USERNAME", ""),
			Password:                utils.GetEnvString("MONGODB_PASSWORD", ""),
			URI:                     utils.GetEnvString("MONGODB_URI", ""),
			ConnectTimeoutInSeconds: utils.GetEnvInt("MONGODB_CONNECT_TIMEOUT_IN_SECONDS", 10),
			MaxPoolSize:             uint64(utils.GetEnvInt("MONGODB_MAX_POOL_SIZE", 50)),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
			PoolSize: utils.GetEnvInt("REDIS_POOL_SIZE", 20),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Host:               utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Port:               utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Username:           utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password:           utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
			VHost:              utils.GetEnvString("RABBITMQ_VHOST", "/"),
			HeartbeatInSeconds: utils.GetEnvInt("RABBITMQ_HEARTBEAT_IN_SECONDS", 10),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                     utils.GetEnvString("APP_ENV", "development"),
			Port:                    utils.GetEnvString("APP_PORT", ":4000"),
			Version:                 utils.GetEnvString("APP_VERSION", "v1"),
			Address:                 utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                utils.GetEnvString("APP_TIMEZONE", "Asia/Ho_Chi_Minh"),
			EndpointPrefix:          utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			AdminAPIKey:             utils.GetEnvString("APP_ADMIN_API_KEY", ""),
			MaxRequests:             utils.GetEnvInt("APP_MAX_REQUEST", 20),
			ShutdownTimeout:         utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestTimeoutInSeconds: utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", ""),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 24),
		},
		Momo: AppMomo{
			PartnerCode:             utils.GetEnvString("MOMO_PARTNER_CODE", ""),
			AccessKey:               utils.GetEnvString("MOMO_ACCESS_KEY", ""),
			SecretKey:               utils.GetEnvString("MOMO_SECRET_KEY", ""),
			RedirectUrl:             utils.GetEnvString("MOMO_REDIRECT_URL", ""),
			IpnUrl:                  utils.GetEnvString("MOMO_IPN_URL", ""),
			Endpoint:                utils.GetEnvString("MOMO_ENDPOINT", "https://test-payment.momo.vn/v2/gateway/api/create"),
			Lang:                    utils.GetEnvString("MOMO_LANG", "vi"),
			RequestTimeoutInSeconds: utils.GetEnvInt("MOMO_REQUEST_TIMEOUT_IN_SECONDS", 30),
			MaxRequestsPerSecond:    utils.GetEnvInt("MOMO_MAX_REQUESTS_PER_SECOND", 5),
			Burst:                   utils.GetEnvInt("MOMO_BURST", 5),
		},
		Booking: AppBooking{
			LockTTL:           utils.GetEnvDuration("BOOKING_LOCK_TTL", 10*time.Second),
			LockRetryAttempts: utils.GetEnvInt("BOOKING_LOCK_RETRY_ATTEMPTS", 5),
			LockRetryInterval: utils.GetEnvDuration("BOOKING_LOCK_RETRY_INTERVAL", 100*time.Millisecond),
			AttemptsPerWindow: utils.GetEnvInt("BOOKING_ATTEMPTS_PER_WINDOW", 10),
			AttemptWindow:     utils.GetEnvDuration("BOOKING_ATTEMPT_WINDOW", time.Minute),
		},
		Worker: AppWorker{
			ReconcilerEnabled:  utils.GetEnvBool("WORKER_RECONCILER_ENABLED", true),
			ReconcilerCronSpec: utils.GetEnvString("WORKER_RECONCILER_CRON_SPEC", "@every 15m"),
			ReconcilerLockTTL:  utils.GetEnvDuration("WORKER_RECONCILER_LOCK_TTL", 2*time.Minute),
		},
		Doctor: AppDoctor{
			ListCacheTTL: utils.GetEnvDuration("DOCTOR_LIST_CACHE_TTL", 30*time.Second),
		},
		MongoDB: AppMongoDB{
			UseTransaction: utils.GetEnvBool("MONGODB_USE_TRANSACTION", false),
		},
		RabbitMQ: AppRabbitMQ{
			PublishEvents:       utils.GetEnvBool("RABBITMQ_PUBLISH_EVENTS", true),
			AppointmentExchange: utils.GetEnvString("RABBITMQ_APPOINTMENT_EXCHANGE", "clinic.appointments"),
		},
	}
}
