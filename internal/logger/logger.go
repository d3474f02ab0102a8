package logger

import (
	"context"

	"go-crossroads/internal/config"
	"go-crossroads/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type mongoSink struct {
	collection *mongo.Collection
}

func (s mongoSink) InsertOne(ctx context.Context, document interface{}) error {
	_, err := s.collection.InsertOne(ctx, document)
	return err
}

// NewLogger builds the console logger and, when a log store is configured,
// tees warn-and-above entries into its "logs" collection.
func NewLogger(lc fx.Lifecycle, cfg *config.Config, store *database.LogStore) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Enable Caller to get Function Name
	zapConfig.EncoderConfig.FunctionKey = "func"

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	if !store.Enabled() {
		return baseLogger.With(zap.String("app_id", cfg.AppId)), nil
	}

	dbWriter := NewDBLogWriter(mongoSink{collection: store.DB.Collection("logs")}, cfg.AppId, 1000)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			dbWriter.Close()
			return nil
		},
	})

	finalCore := NewDBCore(baseLogger.Core(), dbWriter, zapcore.WarnLevel)

	return zap.New(finalCore, zap.AddCaller()).With(zap.String("app_id", cfg.AppId)), nil
}
