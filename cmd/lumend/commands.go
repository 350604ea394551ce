package main

import (
	"context"
	"strings"
	"time"

	"github.com/lumen-home/lumen-core/internal/api"
	"github.com/lumen-home/lumen-core/internal/infrastructure/logging"
	"github.com/lumen-home/lumen-core/internal/infrastructure/mqtt"
)

// MQTT command actions, published to lumen/command/<action>.
// Payloads are ignored; each action is a complete instruction.
const (
	actionToggle          = "toggle"
	actionBrightnessUp    = "brightness_up"
	actionBrightnessDown  = "brightness_down"
	actionTemperatureUp   = "temperature_up"
	actionTemperatureDown = "temperature_down"
	actionDiscover        = "discover"
)

// commandTimeout bounds a single MQTT-triggered operation. Generous enough
// for a discovery pass, short enough that a wedged light frees the handler.
const commandTimeout = 30 * time.Second

// subscribeCommands wires the MQTT command topics to the controller and
// discovery service, so lights can be driven without the HTTP API (wall
// buttons, Node-RED flows, shell scripts with mosquitto_pub).
func subscribeCommands(client *mqtt.Client, controller api.Controller, discoverer api.Discoverer, log *logging.Logger) error {
	topics := mqtt.Topics{}
	prefix := topics.Command("")

	return client.Subscribe(topics.AllCommands(), byte(1), func(topic string, _ []byte) error {
		action := strings.TrimPrefix(topic, prefix)

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		var err error
		switch action {
		case actionToggle:
			var on bool
			on, err = controller.Toggle(ctx)
			if err == nil {
				log.Info("command applied", "action", action, "on", on)
			}
		case actionBrightnessUp:
			err = logAdjust(ctx, log, action, "brightness", controller.IncreaseBrightness)
		case actionBrightnessDown:
			err = logAdjust(ctx, log, action, "brightness", controller.DecreaseBrightness)
		case actionTemperatureUp:
			err = logAdjust(ctx, log, action, "temperature", controller.IncreaseTemperature)
		case actionTemperatureDown:
			err = logAdjust(ctx, log, action, "temperature", controller.DecreaseTemperature)
		case actionDiscover:
			var endpoints int
			if found, derr := discoverer.Discover(ctx); derr != nil {
				err = derr
			} else {
				endpoints = len(found)
				log.Info("command applied", "action", action, "lights", endpoints)
			}
		default:
			log.Warn("unknown command action", "action", action)
			return nil
		}

		if err != nil {
			log.Error("command failed", "action", action, "error", err)
		}
		return err
	})
}

// logAdjust runs a brightness or temperature operation and logs the
// resulting value under the given field name.
func logAdjust(ctx context.Context, log *logging.Logger, action, field string, op func(context.Context) (int, error)) error {
	value, err := op(ctx)
	if err != nil {
		return err
	}
	log.Info("command applied", "action", action, field, value)
	return nil
}
