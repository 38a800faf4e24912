package testkit

import (
	"fmt"

	"godyn/domain/block"
	"godyn/domain/schema"
	"godyn/domain/spec"
)

// Thermostat assembles the demo specification served by cmd/api and
// reused by integration-style tests: a sensed room, a thermostat policy
// and a heater mechanism in a closed temporal loop.
type Thermostat struct {
	Spec *spec.GDSSpec
	Root block.Block
}

// NewThermostat builds and seals the demo spec.
func NewThermostat() (*Thermostat, error) {
	s := spec.New("thermostat")

	celsius, err := schema.NewTypeDef("Celsius", schema.PrimitiveFloat,
		schema.WithDescription("-50..50 degrees"),
		schema.WithUnits("degC"),
		schema.WithConstraint(func(v any) bool {
			f, ok := v.(float64)
			return ok && f >= -50 && f <= 50
		}))
	if err != nil {
		return nil, err
	}
	if err := s.RegisterType(celsius); err != nil {
		return nil, err
	}

	room, err := schema.NewEntity("Room",
		schema.StateVariable{Name: "temperature", Type: celsius, Initial: 18.0})
	if err != nil {
		return nil, err
	}
	if err := s.RegisterEntity(room); err != nil {
		return nil, err
	}

	sensor, err := block.NewAtomic("sensor", block.Interface{
		ForwardOut: block.Ports("temp reading"),
	})
	if err != nil {
		return nil, err
	}
	controller, err := block.NewAtomic("controller", block.Interface{
		ForwardIn:  block.Ports("temp reading"),
		ForwardOut: block.Ports("heater command"),
	})
	if err != nil {
		return nil, err
	}
	heater, err := block.NewAtomic("heater", block.Interface{
		ForwardIn:  block.Ports("command signal"),
		ForwardOut: block.Ports("room temperature"),
	})
	if err != nil {
		return nil, err
	}

	weather, err := block.NewBoundaryAction(sensor)
	if err != nil {
		return nil, err
	}
	policy, err := block.NewPolicy(controller, "setpoint")
	if err != nil {
		return nil, err
	}
	mech, err := block.NewMechanism(heater, []block.UpdateTarget{
		{Entity: "Room", Variable: "temperature"},
	})
	if err != nil {
		return nil, err
	}
	if err := s.RegisterBlock(weather); err != nil {
		return nil, err
	}
	if err := s.RegisterBlock(policy); err != nil {
		return nil, err
	}
	if err := s.RegisterBlock(mech); err != nil {
		return nil, err
	}

	if err := s.RegisterParameter("setpoint", celsius); err != nil {
		return nil, err
	}

	if err := s.RegisterWiring("control path", []block.Wiring{
		block.NewWiring("sensor", "temp reading", "controller", "temp reading"),
		block.NewWiring("controller", "heater command", "heater", "command signal"),
	}); err != nil {
		return nil, err
	}

	sensed, err := block.Stack(sensor, controller)
	if err != nil {
		return nil, fmt.Errorf("composing sensor and controller: %w", err)
	}
	loopBody, err := block.Stack(sensed, heater)
	if err != nil {
		return nil, fmt.Errorf("composing controller and heater: %w", err)
	}
	root, err := block.Loop(loopBody, []block.Wiring{
		block.NewTemporalWiring("heater", "room temperature", "sensor", "temp reading"),
	}, "room at setpoint")
	if err != nil {
		return nil, fmt.Errorf("closing the temporal loop: %w", err)
	}

	s.Seal()
	return &Thermostat{Spec: s, Root: root}, nil
}
