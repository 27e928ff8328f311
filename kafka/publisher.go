package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/myduka/myduka-backend/pkg/logger"
)

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// PublishSaleRecorded publishes a sale recorded event with tracing
func (p *Publisher) PublishSaleRecorded(ctx context.Context, event SaleRecordedEvent) error {
	if event.EventID == "" {
		event.EventID = fmt.Sprintf("evt_%d", time.Now().UnixNano())
	}
	event.EventType = EventTypeSaleRecorded
	event.Timestamp = time.Now()

	key := fmt.Sprintf("store_%d_product_%d", event.StoreID, event.ProductID)
	return p.publish(ctx, TopicSaleRecorded, EventTypeSaleRecorded, event.EventID, key, event,
		attribute.Int64("transaction.id", int64(event.TransactionID)),
		attribute.Int64("product.id", int64(event.ProductID)),
		attribute.Int64("store.id", int64(event.StoreID)),
		attribute.Int("sale.quantity", event.Quantity),
	)
}

// PublishStockReceived publishes a stock received event with tracing
func (p *Publisher) PublishStockReceived(ctx context.Context, event StockReceivedEvent) error {
	if event.EventID == "" {
		event.EventID = fmt.Sprintf("evt_%d", time.Now().UnixNano())
	}
	event.EventType = EventTypeStockReceived
	event.Timestamp = time.Now()

	key := fmt.Sprintf("store_%d_product_%d", event.StoreID, event.ProductID)
	return p.publish(ctx, TopicStockReceived, EventTypeStockReceived, event.EventID, key, event,
		attribute.Int64("record.id", int64(event.RecordID)),
		attribute.Int64("product.id", int64(event.ProductID)),
		attribute.Int64("store.id", int64(event.StoreID)),
		attribute.Int("stock.quantity_received", event.QuantityReceived),
	)
}

// PublishSupplyResponded publishes a supply responded event with tracing
func (p *Publisher) PublishSupplyResponded(ctx context.Context, event SupplyRespondedEvent) error {
	if event.EventID == "" {
		event.EventID = fmt.Sprintf("evt_%d", time.Now().UnixNano())
	}
	event.EventType = EventTypeSupplyResponded
	event.Timestamp = time.Now()

	key := fmt.Sprintf("request_%d", event.RequestID)
	return p.publish(ctx, TopicSupplyResponded, EventTypeSupplyResponded, event.EventID, key, event,
		attribute.Int64("request.id", int64(event.RequestID)),
		attribute.Int64("store.id", int64(event.StoreID)),
		attribute.String("request.status", event.Status),
	)
}

// publish marshals the event, injects trace context into the headers and
// sends it to the topic
func (p *Publisher) publish(ctx context.Context, topic, eventType, eventID, key string, event interface{}, attrs ...attribute.KeyValue) error {
	tracer := otel.Tracer("kafka-publisher")
	spanAttrs := append([]attribute.KeyValue{
		attribute.String("messaging.system", "kafka"),
		attribute.String("messaging.destination", topic),
		attribute.String("messaging.destination_kind", "topic"),
		attribute.String("event.type", eventType),
		attribute.String("event.id", eventID),
	}, attrs...)
	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(spanAttrs...),
	)
	defer span.End()

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into Kafka headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{
			Key:   []byte("event_type"),
			Value: []byte(eventType),
		},
		{
			Key:   []byte("event_id"),
			Value: []byte(eventID),
		},
	}

	for hk, hv := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(hk),
			Value: []byte(hv),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Logger.Error().
			Err(err).
			Str("topic", topic).
			Str("event_id", eventID).
			Str("trace_id", span.SpanContext().TraceID().String()).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")

	logger.Logger.Info().
		Str("event_id", eventID).
		Str("event_type", eventType).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Str("trace_id", span.SpanContext().TraceID().String()).
		Msg("Event published")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
