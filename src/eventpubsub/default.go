package eventpubsub

import (
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

var bus EventBus.Bus

func Init() {
	bus = EventBus.New()
}

func Publish(topic string, event interface{}) {
	bus.Publish(topic, event)
}

func Subscribe(topic string, callbackFn interface{}) error {
	if err := bus.SubscribeAsync(topic, callbackFn, false); err != nil {
		return err
	}

	log.Debugf("Subscribed to topic %s", topic)
	return nil
}

func Unsubscribe(topic string, callbackFn interface{}) error {
	if err := bus.Unsubscribe(topic, callbackFn); err != nil {
		return err
	}

	log.Debugf("Unsubscribed from topic %s", topic)
	return nil
}
