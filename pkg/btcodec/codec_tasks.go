package btcodec

import (
	"bytes"
	"fmt"

	"teraglest/internal/engine"
)

// encodeTaskBody writes a task's persisted fields per §6.2.4's task table,
// in source order.
func encodeTaskBody(w *bytes.Buffer, t engine.Task, tag string) error {
	switch task := t.(type) {
	case *engine.DummyTask:
		writeU8(w, uint8(task.Expect))
	case *engine.WaitTask:
		writeF32(w, task.Time)
	case *engine.PlaySoundTask:
		writeString(w, task.Sound)
		writeF32(w, task.Volume)
		writeF32(w, task.Speed)
	case *engine.FireEventTask:
		writeString(w, task.EventName)
		writeString(w, task.Args)
	case *engine.MoveToTask:
		writeF32(w, task.Radius)
		writeString(w, task.Key)
	case *engine.AttackTask:
		writeF32(w, task.Damage)
		writeString(w, task.Key)
	case *engine.RandomPointTask:
		writeF32(w, task.Range)
		writeString(w, task.TargetKey)
	case *engine.KeepDistanceTask:
		writeF32(w, task.Range)
		writeString(w, task.TargetKey)
	case *engine.SetValueTask:
		writeString(w, task.Key)
		writeString(w, task.FromKey)
	case *engine.MakeNoiseTask:
		writeF32(w, task.Volume)
	default:
		return fmt.Errorf("%w: encode task tag %q", engine.ErrUnknownNodeKind, tag)
	}
	return nil
}

// decodeTaskBody reads into an already-allocated task (built by allocByTag)
// the fields its subclass body carries.
func decodeTaskBody(rd *reader, t engine.Task) error {
	switch task := t.(type) {
	case *engine.DummyTask:
		v, err := rd.u8()
		if err != nil {
			return fmt.Errorf("expect: %w", err)
		}
		task.Expect = engine.DummyExpect(v)
	case *engine.WaitTask:
		v, err := rd.f32()
		if err != nil {
			return fmt.Errorf("time: %w", err)
		}
		task.Time = v
	case *engine.PlaySoundTask:
		sound, err := rd.str()
		if err != nil {
			return fmt.Errorf("sound: %w", err)
		}
		volume, err := rd.f32()
		if err != nil {
			return fmt.Errorf("volume: %w", err)
		}
		speed, err := rd.f32()
		if err != nil {
			return fmt.Errorf("speed: %w", err)
		}
		task.Sound, task.Volume, task.Speed = sound, volume, speed
	case *engine.FireEventTask:
		name, err := rd.str()
		if err != nil {
			return fmt.Errorf("name: %w", err)
		}
		args, err := rd.str()
		if err != nil {
			return fmt.Errorf("args: %w", err)
		}
		task.EventName, task.Args = name, args
	case *engine.MoveToTask:
		radius, err := rd.f32()
		if err != nil {
			return fmt.Errorf("radius: %w", err)
		}
		key, err := rd.str()
		if err != nil {
			return fmt.Errorf("key: %w", err)
		}
		task.Radius, task.Key = radius, key
	case *engine.AttackTask:
		damage, err := rd.f32()
		if err != nil {
			return fmt.Errorf("damage: %w", err)
		}
		key, err := rd.str()
		if err != nil {
			return fmt.Errorf("key: %w", err)
		}
		task.Damage, task.Key = damage, key
	case *engine.RandomPointTask:
		rng, err := rd.f32()
		if err != nil {
			return fmt.Errorf("range: %w", err)
		}
		key, err := rd.str()
		if err != nil {
			return fmt.Errorf("target_key: %w", err)
		}
		task.Range, task.TargetKey = rng, key
	case *engine.KeepDistanceTask:
		rng, err := rd.f32()
		if err != nil {
			return fmt.Errorf("range: %w", err)
		}
		key, err := rd.str()
		if err != nil {
			return fmt.Errorf("target_key: %w", err)
		}
		task.Range, task.TargetKey = rng, key
	case *engine.SetValueTask:
		key, err := rd.str()
		if err != nil {
			return fmt.Errorf("key: %w", err)
		}
		from, err := rd.str()
		if err != nil {
			return fmt.Errorf("from_key: %w", err)
		}
		task.Key, task.FromKey = key, from
	case *engine.MakeNoiseTask:
		v, err := rd.f32()
		if err != nil {
			return fmt.Errorf("volume: %w", err)
		}
		task.Volume = v
	default:
		return fmt.Errorf("%w: decode task type %T", engine.ErrUnknownNodeKind, t)
	}
	return nil
}

// decoratorFlags packs abort_self (bit 0) and abort_lower (bit 1) per the
// decorator common trailer.
func decoratorFlags(d *engine.Decorator) uint8 {
	var flags uint8
	if d.AbortSelf {
		flags |= 1 << 0
	}
	if d.AbortLower {
		flags |= 1 << 1
	}
	return flags
}

func applyDecoratorFlags(d *engine.Decorator, flags uint8) {
	d.AbortSelf = flags&(1<<0) != 0
	d.AbortLower = flags&(1<<1) != 0
}

// encodeDecoratorBody writes a decorator's common trailer (flags) followed
// by its subclass-specific fields per §6.2.4.
func encodeDecoratorBody(w *bytes.Buffer, d *engine.Decorator, tag string) error {
	writeU8(w, decoratorFlags(d))
	switch beh := d.Behavior.(type) {
	case *engine.DummyDecorator:
		writeBool(w, beh.ShouldPass)
	case *engine.CooldownDecorator:
		writeF32(w, beh.Duration)
	case *engine.WatchValueDecorator:
		writeBool(w, beh.CheckSet)
		writeBool(w, beh.Reverse)
		writeString(w, beh.Key)
		writeString(w, beh.Value)
	case *engine.CanSeeDecorator:
		writeString(w, beh.Key)
		writeF32(w, beh.Angle)
		writeF32(w, beh.Range)
		var flags uint8
		if beh.Reverse {
			flags |= 1 << 0
		}
		if beh.Raycast {
			flags |= 1 << 1
		}
		writeU8(w, flags)
	case *engine.IsInRangeDecorator:
		writeString(w, beh.Key)
		writeF32(w, beh.Range)
		writeBool(w, beh.Reverse)
	default:
		return fmt.Errorf("%w: encode decorator tag %q", engine.ErrUnknownDecoratorKind, tag)
	}
	return nil
}

// decodeDecoratorBody reads flags and subclass fields and returns a fresh
// Decorator ready for Context.AddDecorator.
func decodeDecoratorBody(rd *reader, tag string) (*engine.Decorator, error) {
	flags, err := rd.u8()
	if err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	var behavior engine.DecoratorBehavior
	switch tag {
	case tagDecDummy:
		v, err := rd.boolean()
		if err != nil {
			return nil, fmt.Errorf("should_pass: %w", err)
		}
		behavior = &engine.DummyDecorator{ShouldPass: v}
	case tagDecCooldown:
		v, err := rd.f32()
		if err != nil {
			return nil, fmt.Errorf("duration: %w", err)
		}
		behavior = &engine.CooldownDecorator{Duration: v}
	case tagDecWatchValue:
		checkSet, err := rd.boolean()
		if err != nil {
			return nil, fmt.Errorf("check_set: %w", err)
		}
		reverse, err := rd.boolean()
		if err != nil {
			return nil, fmt.Errorf("reverse: %w", err)
		}
		key, err := rd.str()
		if err != nil {
			return nil, fmt.Errorf("key: %w", err)
		}
		value, err := rd.str()
		if err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}
		behavior = &engine.WatchValueDecorator{Key: key, Value: value, CheckSet: checkSet, Reverse: reverse}
	case tagDecCanSee:
		key, err := rd.str()
		if err != nil {
			return nil, fmt.Errorf("key: %w", err)
		}
		angle, err := rd.f32()
		if err != nil {
			return nil, fmt.Errorf("angle: %w", err)
		}
		rng, err := rd.f32()
		if err != nil {
			return nil, fmt.Errorf("range: %w", err)
		}
		innerFlags, err := rd.u8()
		if err != nil {
			return nil, fmt.Errorf("flags: %w", err)
		}
		behavior = &engine.CanSeeDecorator{
			Key: key, Angle: angle, Range: rng,
			Reverse: innerFlags&(1<<0) != 0,
			Raycast: innerFlags&(1<<1) != 0,
		}
	case tagDecIsInRange:
		key, err := rd.str()
		if err != nil {
			return nil, fmt.Errorf("key: %w", err)
		}
		rng, err := rd.f32()
		if err != nil {
			return nil, fmt.Errorf("range: %w", err)
		}
		reverse, err := rd.boolean()
		if err != nil {
			return nil, fmt.Errorf("reverse: %w", err)
		}
		behavior = &engine.IsInRangeDecorator{Key: key, Range: rng, Reverse: reverse}
	default:
		return nil, fmt.Errorf("%w: tag %q", engine.ErrUnknownDecoratorKind, tag)
	}

	d := &engine.Decorator{Behavior: behavior}
	applyDecoratorFlags(d, flags)
	return d, nil
}
