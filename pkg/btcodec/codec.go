// Package btcodec implements the framed, versioned binary encoding for a
// behavior tree Context: its blackboard registry, its node arena, and every
// node's and decorator's persisted fields.
//
// The format mirrors pkg/formats' fixed-header-plus-binary.Read approach:
// every section is read through a single bytes.Reader with explicit
// little-endian field reads, wrapping truncation into ErrTruncatedStream
// rather than letting io.EOF leak to callers.
package btcodec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/uuid"

	"teraglest/internal/engine"
)

// RegistryVersion is the version written into the registry block's flag
// word; version >= 1 always carries a board_name string.
const RegistryVersion = 1

// VersionMajor and VersionMinor are the current Context block version.
// VersionMinor 2 gates the 'BTED' magic per §6.2.5.
const (
	VersionMajor = 1
	VersionMinor = 2
)

// MagicFourCC is the gate value required when VersionMinor >= 2.
var MagicFourCC = [4]byte{'B', 'T', 'E', 'D'}

// --- primitive writers -----------------------------------------------------

func writeU8(w *bytes.Buffer, v uint8)   { w.WriteByte(v) }
func writeU32(w *bytes.Buffer, v uint32) { binary.Write(w, binary.LittleEndian, v) }
func writeI32(w *bytes.Buffer, v int32)  { binary.Write(w, binary.LittleEndian, v) }
func writeU64(w *bytes.Buffer, v uint64) { binary.Write(w, binary.LittleEndian, v) }
func writeF32(w *bytes.Buffer, v float32) { binary.Write(w, binary.LittleEndian, v) }
func writeBool(w *bytes.Buffer, v bool) {
	if v {
		writeU8(w, 1)
	} else {
		writeU8(w, 0)
	}
}

func writeString(w *bytes.Buffer, s string) {
	data := []byte(s)
	writeU32(w, uint32(len(data)))
	w.Write(data)
	if pad := (4 - len(data)%4) % 4; pad > 0 {
		w.Write(make([]byte, pad))
	}
}

func writeUUID(w *bytes.Buffer, id uuid.UUID) { w.Write(id[:]) }

// --- primitive readers -------------------------------------------------

type reader struct {
	r *bytes.Reader
}

func (rd *reader) wrap(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return engine.ErrTruncatedStream
	}
	return err
}

func (rd *reader) u8() (uint8, error) {
	b, err := rd.r.ReadByte()
	if err != nil {
		return 0, rd.wrap(err)
	}
	return b, nil
}

func (rd *reader) u32() (uint32, error) {
	var v uint32
	if err := binary.Read(rd.r, binary.LittleEndian, &v); err != nil {
		return 0, rd.wrap(err)
	}
	return v, nil
}

func (rd *reader) i32() (int32, error) {
	var v int32
	if err := binary.Read(rd.r, binary.LittleEndian, &v); err != nil {
		return 0, rd.wrap(err)
	}
	return v, nil
}

func (rd *reader) u64() (uint64, error) {
	var v uint64
	if err := binary.Read(rd.r, binary.LittleEndian, &v); err != nil {
		return 0, rd.wrap(err)
	}
	return v, nil
}

func (rd *reader) f32() (float32, error) {
	var v float32
	if err := binary.Read(rd.r, binary.LittleEndian, &v); err != nil {
		return 0, rd.wrap(err)
	}
	return v, nil
}

func (rd *reader) boolean() (bool, error) {
	v, err := rd.u8()
	return v != 0, err
}

func (rd *reader) bytesN(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rd.r, buf); err != nil {
		return nil, rd.wrap(err)
	}
	return buf, nil
}

func (rd *reader) str() (string, error) {
	length, err := rd.u32()
	if err != nil {
		return "", err
	}
	data, err := rd.bytesN(int(length))
	if err != nil {
		return "", err
	}
	if pad := (4 - int(length)%4) % 4; pad > 0 {
		if _, err := rd.bytesN(pad); err != nil {
			return "", err
		}
	}
	return string(data), nil
}

func (rd *reader) uuid() (uuid.UUID, error) {
	raw, err := rd.bytesN(16)
	if err != nil {
		return uuid.UUID{}, err
	}
	var id uuid.UUID
	copy(id[:], raw)
	return id, nil
}

// --- registry block ------------------------------------------------------

func encodeRegistry(w *bytes.Buffer, reg *engine.DataRegistry) {
	entries := reg.Entries()
	flag := uint32(RegistryVersion)<<24 | uint32(len(entries))&0xFFFF
	writeU32(w, flag)
	writeString(w, reg.BoardName())
	for _, e := range entries {
		writeI32(w, int32(e.Handle))
		writeU32(w, uint32(e.Type))
		writeString(w, e.Name)
	}
}

func decodeRegistry(rd *reader) (*engine.DataRegistry, error) {
	flag, err := rd.u32()
	if err != nil {
		return nil, fmt.Errorf("registry flag: %w", err)
	}
	version := flag >> 24
	count := int(flag & 0xFFFF)

	reg := engine.NewDataRegistry()
	if version >= 1 {
		name, err := rd.str()
		if err != nil {
			return nil, fmt.Errorf("registry board_name: %w", err)
		}
		reg.SetBoardName(name)
	}
	for i := 0; i < count; i++ {
		if _, err := rd.i32(); err != nil { // handle: recomputed by Register, in registration order
			return nil, fmt.Errorf("registry entry %d handle: %w", i, err)
		}
		typ, err := rd.u32()
		if err != nil {
			return nil, fmt.Errorf("registry entry %d type: %w", i, err)
		}
		name, err := rd.str()
		if err != nil {
			return nil, fmt.Errorf("registry entry %d name: %w", i, err)
		}
		if _, err := reg.Register(name, engine.BTDataType(typ)); err != nil {
			return nil, fmt.Errorf("registry entry %d: %w", i, err)
		}
	}
	return reg, nil
}

// --- node kind tags --------------------------------------------------------

const (
	tagCompSequence = "CompSequence"
	tagCompSelector = "CompSelector"

	tagTaskDummy        = "TaskDummy"
	tagTaskWait         = "TaskWait"
	tagTaskPlaySound    = "TaskPlaySound"
	tagTaskFireEvent    = "TaskFireEvent"
	tagTaskMoveTo       = "TaskMoveTo"
	tagTaskAttack       = "TaskAttack"
	tagTaskRandomPoint  = "TaskRandomPoint"
	tagTaskKeepDistance = "TaskKeepDistance"
	tagTaskSetValue     = "TaskSetValue"
	tagTaskMakeNoise    = "TaskMakeNoise"

	tagDecDummy      = "DecDummy"
	tagDecCooldown   = "DecCooldown"
	tagDecWatchValue = "DecWatchValue"
	tagDecCanSee     = "DecCanSee"
	tagDecIsInRange  = "DecIsInRange"
)

func taskTag(t engine.Task) (string, error) {
	switch t.(type) {
	case *engine.DummyTask:
		return tagTaskDummy, nil
	case *engine.WaitTask:
		return tagTaskWait, nil
	case *engine.PlaySoundTask:
		return tagTaskPlaySound, nil
	case *engine.FireEventTask:
		return tagTaskFireEvent, nil
	case *engine.MoveToTask:
		return tagTaskMoveTo, nil
	case *engine.AttackTask:
		return tagTaskAttack, nil
	case *engine.RandomPointTask:
		return tagTaskRandomPoint, nil
	case *engine.KeepDistanceTask:
		return tagTaskKeepDistance, nil
	case *engine.SetValueTask:
		return tagTaskSetValue, nil
	case *engine.MakeNoiseTask:
		return tagTaskMakeNoise, nil
	default:
		return "", fmt.Errorf("%w: unregistered task type %T", engine.ErrUnknownNodeKind, t)
	}
}

func decoratorTag(b engine.DecoratorBehavior) (string, error) {
	switch b.(type) {
	case *engine.DummyDecorator:
		return tagDecDummy, nil
	case *engine.CooldownDecorator:
		return tagDecCooldown, nil
	case *engine.WatchValueDecorator:
		return tagDecWatchValue, nil
	case *engine.CanSeeDecorator:
		return tagDecCanSee, nil
	case *engine.IsInRangeDecorator:
		return tagDecIsInRange, nil
	default:
		return "", fmt.Errorf("%w: unregistered decorator type %T", engine.ErrUnknownDecoratorKind, b)
	}
}

// --- top-level encode/decode -----------------------------------------------

// Encode serializes ctx into the framed binary format described by §6.2.
func Encode(ctx *engine.Context) ([]byte, error) {
	var w bytes.Buffer

	encodeRegistry(&w, ctx.Registry())

	nodeIdx := flattenNonRootNodes(ctx)
	indexOf := make(map[engine.NodeIndex]int32, len(nodeIdx))
	for i, idx := range nodeIdx {
		indexOf[idx] = int32(i)
	}

	writeU32(&w, uint32(len(nodeIdx)))
	writeU8(&w, VersionMajor)
	writeU8(&w, VersionMinor)
	if VersionMinor >= 2 {
		w.Write(MagicFourCC[:])
	}
	if VersionMinor >= 1 {
		writeI32(&w, ctx.LOD)
	}

	tags := make([]string, len(nodeIdx))
	for i, idx := range nodeIdx {
		n := ctx.Node(idx)
		tag, err := nodeTag(n)
		if err != nil {
			return nil, err
		}
		tags[i] = tag
		writeString(&w, tag)
		if VersionMajor >= 1 {
			writeUUID(&w, n.UUID)
		}
	}

	rootNode := ctx.Node(ctx.Root())
	entryIndex := int32(-1)
	if len(rootNode.Children) == 1 {
		entryIndex = indexOf[rootNode.Children[0]]
	}
	writeI32(&w, entryIndex)

	for i, idx := range nodeIdx {
		n := ctx.Node(idx)
		if err := encodeNodeBody(&w, n, tags[i], indexOf); err != nil {
			return nil, err
		}
	}

	return w.Bytes(), nil
}

// nodeTag returns the registry_name for a Sequence/Selector/Task node.
func nodeTag(n *engine.Node) (string, error) {
	switch n.Kind {
	case engine.NodeSequence:
		return tagCompSequence, nil
	case engine.NodeSelector:
		return tagCompSelector, nil
	case engine.NodeTask:
		if n.Task == nil {
			return "", fmt.Errorf("%w: task node %q has no task", engine.ErrUnknownNodeKind, n.Name)
		}
		return taskTag(n.Task)
	default:
		return "", fmt.Errorf("%w: kind %s", engine.ErrUnknownNodeKind, n.Kind)
	}
}

// flattenNonRootNodes walks ctx's arena in allocation-index order, skipping
// Root (which is persisted separately via root_body, §6.2.2).
func flattenNonRootNodes(ctx *engine.Context) []engine.NodeIndex {
	var out []engine.NodeIndex
	for i := 0; i < ctx.NodeCount(); i++ {
		idx := engine.NodeIndex(i)
		n := ctx.Node(idx)
		if n.Kind == engine.NodeRoot {
			continue
		}
		out = append(out, idx)
	}
	return out
}

func encodeNodeBody(w *bytes.Buffer, n *engine.Node, tag string, indexOf map[engine.NodeIndex]int32) error {
	writeString(w, n.Name)
	writeU64(w, uint64(len(n.Decorators)))
	decTags := make([]string, len(n.Decorators))
	for i, d := range n.Decorators {
		dtag, err := decoratorTag(d.Behavior)
		if err != nil {
			return err
		}
		decTags[i] = dtag
		writeString(w, dtag)
	}
	for i, d := range n.Decorators {
		if err := encodeDecoratorBody(w, d, decTags[i]); err != nil {
			return err
		}
	}
	writeF32(w, n.CanvasUV[0])
	writeF32(w, n.CanvasUV[1])

	switch n.Kind {
	case engine.NodeSequence, engine.NodeSelector:
		writeBool(w, n.DecoratorScoped)
		writeU64(w, uint64(len(n.Children)))
		for _, c := range n.Children {
			writeI32(w, indexOf[c])
		}
	case engine.NodeTask:
		return encodeTaskBody(w, n.Task, tag)
	}
	return nil
}

// Decode parses data into a fresh Context.
func Decode(data []byte) (*engine.Context, error) {
	rd := &reader{r: bytes.NewReader(data)}

	reg, err := decodeRegistry(rd)
	if err != nil {
		return nil, err
	}

	nodeCount, err := rd.u32()
	if err != nil {
		return nil, fmt.Errorf("node_count: %w", err)
	}
	major, err := rd.u8()
	if err != nil {
		return nil, fmt.Errorf("version_major: %w", err)
	}
	minor, err := rd.u8()
	if err != nil {
		return nil, fmt.Errorf("version_minor: %w", err)
	}
	if major > VersionMajor {
		return nil, fmt.Errorf("version_major %d: %w", major, engine.ErrUnsupportedVersion)
	}
	if minor >= 2 {
		magic, err := rd.bytesN(4)
		if err != nil {
			return nil, fmt.Errorf("fourcc: %w", err)
		}
		if !bytes.Equal(magic, MagicFourCC[:]) {
			return nil, fmt.Errorf("fourcc %q: %w", magic, engine.ErrBadMagic)
		}
	}

	ctx := engine.NewContext(reg)
	if minor >= 1 {
		lod, err := rd.i32()
		if err != nil {
			return nil, fmt.Errorf("lod: %w", err)
		}
		ctx.LOD = lod
	}

	tags := make([]string, nodeCount)
	uuids := make([]uuid.UUID, nodeCount)
	for i := uint32(0); i < nodeCount; i++ {
		tag, err := rd.str()
		if err != nil {
			return nil, fmt.Errorf("node %d registry_name: %w", i, err)
		}
		tags[i] = tag
		if major >= 1 {
			id, err := rd.uuid()
			if err != nil {
				return nil, fmt.Errorf("node %d uuid: %w", i, err)
			}
			uuids[i] = id
		} else {
			uuids[i] = uuid.New()
		}
	}

	entryIndex, err := rd.i32()
	if err != nil {
		return nil, fmt.Errorf("root_body entry_index: %w", err)
	}

	indices := make([]engine.NodeIndex, nodeCount)
	for i, tag := range tags {
		idx, err := allocByTag(ctx, tag)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		indices[i] = idx
		ctx.Node(idx).UUID = uuids[i]
	}

	for i, idx := range indices {
		if err := decodeNodeBody(rd, ctx, idx, indices); err != nil {
			return nil, fmt.Errorf("node %d body: %w", i, err)
		}
	}

	if entryIndex >= 0 {
		if int(entryIndex) >= len(indices) {
			return nil, fmt.Errorf("root entry_index %d out of range: %w", entryIndex, engine.ErrTruncatedStream)
		}
		if err := ctx.AddChild(ctx.Root(), indices[entryIndex]); err != nil {
			return nil, fmt.Errorf("attach root entry: %w", err)
		}
	}

	return ctx, nil
}

func allocByTag(ctx *engine.Context, tag string) (engine.NodeIndex, error) {
	switch tag {
	case tagCompSequence:
		return ctx.NewSequence(""), nil
	case tagCompSelector:
		return ctx.NewSelector(""), nil
	case tagTaskDummy:
		return ctx.NewTask("", &engine.DummyTask{}), nil
	case tagTaskWait:
		return ctx.NewTask("", &engine.WaitTask{}), nil
	case tagTaskPlaySound:
		return ctx.NewTask("", &engine.PlaySoundTask{}), nil
	case tagTaskFireEvent:
		return ctx.NewTask("", &engine.FireEventTask{}), nil
	case tagTaskMoveTo:
		return ctx.NewTask("", &engine.MoveToTask{}), nil
	case tagTaskAttack:
		return ctx.NewTask("", &engine.AttackTask{}), nil
	case tagTaskRandomPoint:
		return ctx.NewTask("", &engine.RandomPointTask{}), nil
	case tagTaskKeepDistance:
		return ctx.NewTask("", &engine.KeepDistanceTask{}), nil
	case tagTaskSetValue:
		return ctx.NewTask("", &engine.SetValueTask{}), nil
	case tagTaskMakeNoise:
		return ctx.NewTask("", &engine.MakeNoiseTask{}), nil
	default:
		return engine.InvalidNodeIndex, fmt.Errorf("tag %q: %w", tag, engine.ErrUnknownNodeKind)
	}
}

func decodeNodeBody(rd *reader, ctx *engine.Context, idx engine.NodeIndex, indices []engine.NodeIndex) error {
	n := ctx.Node(idx)

	name, err := rd.str()
	if err != nil {
		return fmt.Errorf("node_name: %w", err)
	}
	n.Name = name

	decoratorCount, err := rd.u64()
	if err != nil {
		return fmt.Errorf("decorator_count: %w", err)
	}
	decTags := make([]string, decoratorCount)
	for i := uint64(0); i < decoratorCount; i++ {
		tag, err := rd.str()
		if err != nil {
			return fmt.Errorf("decorator %d registry_name: %w", i, err)
		}
		decTags[i] = tag
	}
	for i := uint64(0); i < decoratorCount; i++ {
		dec, err := decodeDecoratorBody(rd, decTags[i])
		if err != nil {
			return fmt.Errorf("decorator %d body: %w", i, err)
		}
		if err := ctx.AddDecorator(idx, dec); err != nil {
			return fmt.Errorf("decorator %d attach: %w", i, err)
		}
	}

	u0, err := rd.f32()
	if err != nil {
		return fmt.Errorf("canvas_uv[0]: %w", err)
	}
	u1, err := rd.f32()
	if err != nil {
		return fmt.Errorf("canvas_uv[1]: %w", err)
	}
	n.CanvasUV = [2]float32{u0, u1}

	switch n.Kind {
	case engine.NodeSequence, engine.NodeSelector:
		scoped, err := rd.boolean()
		if err != nil {
			return fmt.Errorf("decorator_scoped: %w", err)
		}
		n.DecoratorScoped = scoped
		childCount, err := rd.u64()
		if err != nil {
			return fmt.Errorf("child_count: %w", err)
		}
		for i := uint64(0); i < childCount; i++ {
			childIdx, err := rd.i32()
			if err != nil {
				return fmt.Errorf("child_index %d: %w", i, err)
			}
			if int(childIdx) < 0 || int(childIdx) >= len(indices) {
				return fmt.Errorf("child_index %d out of range: %w", childIdx, engine.ErrTruncatedStream)
			}
			if err := ctx.AddChild(idx, indices[childIdx]); err != nil {
				return fmt.Errorf("attach child %d: %w", i, err)
			}
		}
	case engine.NodeTask:
		return decodeTaskBody(rd, n.Task)
	}
	return nil
}
