package bootstrap

import (
	"arena-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// Module wires the HTTP API process.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	RedisModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)

// WorkerModule wires the background process: settlement worker and outbox relay.
var WorkerModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	MessagingModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.WorkerModule,
)
