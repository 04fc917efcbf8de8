package kafka

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/IBM/sarama"
)

// RenderRequest is the message format for queued video jobs.
// MusicURL optionally points at a background track to mix in.
type RenderRequest struct {
	PaperID  string `json:"paper_id"`
	Aspect   string `json:"aspect"`
	MusicURL string `json:"music_url,omitempty"`
}

// RequestHandler processes one decoded render request. A returned
// error leaves the message unmarked so it can be retried.
type RequestHandler func(ctx context.Context, req RenderRequest) error

// Consumer pulls render requests off Kafka and hands them to the
// pipeline.
type Consumer struct {
	group   sarama.ConsumerGroup
	handler RequestHandler
	topic   string
	groupID string
	ready   chan bool
}

// ConsumerConfig holds Kafka consumer configuration
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Handler RequestHandler
}

// NewConsumer creates a new Kafka consumer
func NewConsumer(config ConsumerConfig) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		handler: config.Handler,
		topic:   config.Topic,
		groupID: config.GroupID,
		ready:   make(chan bool),
	}, nil
}

// Start begins consuming messages from Kafka
func (c *Consumer) Start(ctx context.Context) error {
	handler := &groupHandler{
		handle: c.handler,
		ready:  c.ready,
	}

	go func() {
		for {
			if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
				if err == context.Canceled {
					log.Println("Kafka consumer context canceled")
					return
				}
				log.Printf("Error from Kafka consumer: %v", err)
			}

			if ctx.Err() != nil {
				return
			}
			handler.ready = make(chan bool)
		}
	}()

	<-c.ready
	log.Printf("✅ Kafka consumer started (group: %s, topic: %s)", c.groupID, c.topic)

	go func() {
		for err := range c.group.Errors() {
			log.Printf("❌ Kafka consumer error: %v", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the consumer
func (c *Consumer) Close() error {
	log.Println("Closing Kafka consumer...")
	return c.group.Close()
}

// StartWithGracefulShutdown runs the consumer until SIGINT/SIGTERM,
// leaving a short drain window for in-flight jobs.
func StartWithGracefulShutdown(config ConsumerConfig) error {
	consumer, err := NewConsumer(config)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		return err
	}

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigterm:
		log.Println("Received termination signal")
	case <-ctx.Done():
		log.Println("Context canceled")
	}

	cancel()

	// Give some time for in-flight processing to complete
	time.Sleep(2 * time.Second)

	return consumer.Close()
}

// groupHandler implements sarama.ConsumerGroupHandler
type groupHandler struct {
	handle RequestHandler
	ready  chan bool
}

// Setup is run at the beginning of a new session, before ConsumeClaim
func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	close(h.ready)
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim must start a consumer loop of ConsumerGroupClaim's Messages()
func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			log.Printf("📥 Received render request: partition=%d, offset=%d, key=%s",
				message.Partition, message.Offset, string(message.Key))

			var req RenderRequest
			if err := json.Unmarshal(message.Value, &req); err != nil {
				log.Printf("❌ Failed to unmarshal render request, skipping: %v", err)
				session.MarkMessage(message, "")
				continue
			}
			if req.PaperID == "" {
				log.Printf("⚠️  Render request missing paper_id, skipping")
				session.MarkMessage(message, "")
				continue
			}

			if err := h.handle(session.Context(), req); err != nil {
				// Leave unmarked so the job is retried
				log.Printf("❌ Failed to process render request for %s: %v", req.PaperID, err)
				continue
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

// GetBrokers parses the Kafka broker list from the environment.
func GetBrokers() []string {
	brokers := os.Getenv("KAFKA_BOOTSTRAP_SERVERS")
	if brokers == "" {
		brokers = "localhost:9093"
	}
	return strings.Split(brokers, ",")
}

// GetTopic returns the render request topic name.
func GetTopic() string {
	topic := os.Getenv("KAFKA_TOPIC_RENDER_REQUESTS")
	if topic == "" {
		topic = "render-requests"
	}
	return topic
}

// GetGroupID returns the consumer group ID.
func GetGroupID() string {
	groupID := os.Getenv("KAFKA_CONSUMER_GROUP_ID")
	if groupID == "" {
		groupID = "render-consumer-group"
	}
	return groupID
}
