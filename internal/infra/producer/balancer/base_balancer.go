package balancer

import "github.com/segmentio/kafka-go"

// IBaseBalancer 與kafka.Balancer相容
type IBaseBalancer interface {
	Balance(msg kafka.Message, partitions ...int) (partition int)
}
