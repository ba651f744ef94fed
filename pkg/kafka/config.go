package kafka

// Config holds Kafka connection parameters.
type Config struct {
	Brokers []string

	// ConsumerGroup is used by consumers only.
	ConsumerGroup string
}
