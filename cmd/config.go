package cmd

import "time"

type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	KafkaHost          string
	KafkaConsumerGroup string
	MaxDistanceKm      float64
	ConsumptionPerKm   float64
	ReturnTransitDelay time.Duration
}
