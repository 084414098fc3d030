package consumer

import (
	"context"
	"errors"
	"sync"

	"github.com/RoyceAzure/lab/rj_kafka/kafka/consumer"
	"github.com/RoyceAzure/lab/rj_kafka/kafka/message"
	"github.com/rs/zerolog/log"
)

type ConsumerError error

var (
	ErrConsumerClosed     = errors.New("consumer closed")
	ErrUnknownEventFormat = errors.New("unknown event format")
	ErrEventTypeNotFound  = errors.New("event type not found")
)

type IBaseConsumer interface {
	Start(ctx context.Context) error
	Stop()
}

// ConsumerHandler 把kafka message轉成domain事件並處理
type ConsumerHandler interface {
	Handle(ctx context.Context, msg message.Message) error
}

type baseConsumer struct {
	consumer  consumer.Consumer
	handler   ConsumerHandler
	closeOnce sync.Once
	closeChan chan struct{}
}

func newBaseConsumer(consumer consumer.Consumer, handler ConsumerHandler) *baseConsumer {
	return &baseConsumer{consumer: consumer, handler: handler, closeChan: make(chan struct{})}
}

func (c *baseConsumer) checkIsClosed() bool {
	select {
	case <-c.closeChan:
		return true
	default:
		return false
	}
}

func (c *baseConsumer) Start(ctx context.Context) error {
	if c.checkIsClosed() {
		return ErrConsumerClosed
	}

	msgChan, errChan, err := c.consumer.Consume()
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-c.closeChan:
				return
			case msg := <-msgChan:
				if err := c.handler.Handle(ctx, msg); err != nil {
					log.Error().Err(err).Msg("failed to handle order event")
					continue
				}
			case err := <-errChan:
				log.Error().Err(err).Msg("order event consumer error")
			}
		}
	}()

	return nil
}

func (c *baseConsumer) Stop() {
	if c.checkIsClosed() {
		return
	}

	c.closeOnce.Do(func() {
		close(c.closeChan)
	})

	c.consumer.Close()
}
