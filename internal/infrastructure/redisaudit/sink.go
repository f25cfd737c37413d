// Package redisaudit implementa el sink de auditoría sobre Redis Streams.
// Cada evento se publica con XADD a un stream append-only; las fallas se
// registran en el log y se descartan, nunca se propagan al caller.
package redisaudit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Inventario-ledger/internal/application/audit"
	"github.com/jhoicas/Inventario-ledger/pkg/config"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

const (
	inventoryStream = "audit:inventory"
	catalogStream   = "audit:catalog"

	// Presupuesto máximo por publicación. El contexto del request puede
	// morir antes (el publish corre después del commit), así que cada envío
	// usa su propio contexto con este timeout.
	publishTimeout = 3 * time.Second
)

// Sink publica eventos de auditoría en Redis Streams.
type Sink struct {
	client *redis.Client
	log    *logger.Logger
}

var _ audit.Sink = (*Sink)(nil)

// New crea el sink y verifica la conexión con un ping.
func New(cfg config.RedisConfig, log *logger.Logger) (*Sink, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectar a redis: %w", err)
	}

	return &Sink{client: client, log: log}, nil
}

// Close cierra la conexión a Redis.
func (s *Sink) Close() error {
	return s.client.Close()
}

func (s *Sink) InventoryEvent(_ context.Context, ev audit.InventoryEvent) {
	s.publish(inventoryStream, ev.EventID, ev)
}

func (s *Sink) CatalogEvent(_ context.Context, ev audit.CatalogEvent) {
	s.publish(catalogStream, ev.EventID, ev)
}

// publish serializa el evento y lo agrega al stream. Contexto propio,
// desacoplado del request: el evento se publica después del commit y no debe
// depender de que el caller siga vivo.
func (s *Sink) publish(stream, eventID string, ev any) {
	payload, err := json.Marshal(ev)
	if err != nil {
		s.log.Warn().Err(err).Str("stream", stream).Str("event_id", eventID).
			Msg("auditoría: no se pudo serializar el evento, se descarta")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{
			"event_id": eventID,
			"payload":  string(payload),
		},
	}).Err()
	if err != nil {
		s.log.Warn().Err(err).Str("stream", stream).Str("event_id", eventID).
			Msg("auditoría: no se pudo publicar el evento, se descarta")
	}
}
