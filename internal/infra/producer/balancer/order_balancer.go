package balancer

import (
	"hash/fnv"

	"github.com/segmentio/kafka-go"
)

type OrderBalancer struct {
	numPartitions int
}

func NewOrderBalancer(numPartitions int) IBaseBalancer {
	return &OrderBalancer{numPartitions: numPartitions}
}

// 訂單事件使用userid做key，同一用戶的事件必須進同一分區維持順序
func (o *OrderBalancer) Balance(msg kafka.Message, partitions ...int) (partition int) {
	h := fnv.New32a()
	h.Write(msg.Key)
	hashed := int(h.Sum32())

	if len(partitions) != 0 {
		return partitions[hashed%len(partitions)]
	}

	if o.numPartitions <= 0 {
		return 0
	}
	return hashed % o.numPartitions
}
