package msgs

import (
	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/cutebot.go/pkg/framework"
)

// CutebotSpeed sets the wheel speeds in percent, negative reverses.
type CutebotSpeed struct {
	Left  int32 `protobuf:"varint,1,opt,name=left,proto3" json:"left,omitempty"`
	Right int32 `protobuf:"varint,2,opt,name=right,proto3" json:"right,omitempty"`
}

// NewMessage implements Message.
func (m *CutebotSpeed) NewMessage() fx.Message { return &CutebotSpeed{} }

// TypeID implements SerializableMessage.
func (m *CutebotSpeed) TypeID() uint32 { return CutebotSpeedTypeID }

// Serializable implements SerializableMessage.
func (m *CutebotSpeed) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CutebotSpeed) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CutebotSpeed) Reset() { *m = CutebotSpeed{} }

// String implements proto.Message.
func (m *CutebotSpeed) String() string { return proto.CompactTextString(m) }

// CutebotStop stops both wheels.
type CutebotStop struct {
}

// NewMessage implements Message.
func (m *CutebotStop) NewMessage() fx.Message { return &CutebotStop{} }

// TypeID implements SerializableMessage.
func (m *CutebotStop) TypeID() uint32 { return CutebotStopTypeID }

// Serializable implements SerializableMessage.
func (m *CutebotStop) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CutebotStop) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CutebotStop) Reset() { *m = CutebotStop{} }

// String implements proto.Message.
func (m *CutebotStop) String() string { return proto.CompactTextString(m) }

// CutebotMove drives a distance and reports completion with a CutebotMotion event.
type CutebotMove struct {
	Speed      int32 `protobuf:"varint,1,opt,name=speed,proto3" json:"speed,omitempty"`
	DistanceCm int32 `protobuf:"varint,2,opt,name=distance_cm,json=distanceCm,proto3" json:"distance_cm,omitempty"`
}

// NewMessage implements Message.
func (m *CutebotMove) NewMessage() fx.Message { return &CutebotMove{} }

// TypeID implements SerializableMessage.
func (m *CutebotMove) TypeID() uint32 { return CutebotMoveTypeID }

// Serializable implements SerializableMessage.
func (m *CutebotMove) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CutebotMove) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CutebotMove) Reset() { *m = CutebotMove{} }

// String implements proto.Message.
func (m *CutebotMove) String() string { return proto.CompactTextString(m) }

// CutebotServoType calibrates the full scale of a servo.
type CutebotServoType struct {
	Servo     uint32 `protobuf:"varint,1,opt,name=servo,proto3" json:"servo,omitempty"`
	FullScale uint32 `protobuf:"varint,2,opt,name=full_scale,json=fullScale,proto3" json:"full_scale,omitempty"`
}

// NewMessage implements Message.
func (m *CutebotServoType) NewMessage() fx.Message { return &CutebotServoType{} }

// TypeID implements SerializableMessage.
func (m *CutebotServoType) TypeID() uint32 { return CutebotServoTypeTypeID }

// Serializable implements SerializableMessage.
func (m *CutebotServoType) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CutebotServoType) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CutebotServoType) Reset() { *m = CutebotServoType{} }

// String implements proto.Message.
func (m *CutebotServoType) String() string { return proto.CompactTextString(m) }

// CutebotServoAngle turns a servo to an angle in degrees.
type CutebotServoAngle struct {
	Servo uint32  `protobuf:"varint,1,opt,name=servo,proto3" json:"servo,omitempty"`
	Angle float32 `protobuf:"fixed32,2,opt,name=angle,proto3" json:"angle,omitempty"`
}

// NewMessage implements Message.
func (m *CutebotServoAngle) NewMessage() fx.Message { return &CutebotServoAngle{} }

// TypeID implements SerializableMessage.
func (m *CutebotServoAngle) TypeID() uint32 { return CutebotServoAngleTypeID }

// Serializable implements SerializableMessage.
func (m *CutebotServoAngle) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CutebotServoAngle) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CutebotServoAngle) Reset() { *m = CutebotServoAngle{} }

// String implements proto.Message.
func (m *CutebotServoAngle) String() string { return proto.CompactTextString(m) }

// CutebotLED sets the color of the headlights.
type CutebotLED struct {
	Led   uint32 `protobuf:"varint,1,opt,name=led,proto3" json:"led,omitempty"`
	Color uint32 `protobuf:"varint,2,opt,name=color,proto3" json:"color,omitempty"`
}

// NewMessage implements Message.
func (m *CutebotLED) NewMessage() fx.Message { return &CutebotLED{} }

// TypeID implements SerializableMessage.
func (m *CutebotLED) TypeID() uint32 { return CutebotLEDTypeID }

// Serializable implements SerializableMessage.
func (m *CutebotLED) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CutebotLED) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CutebotLED) Reset() { *m = CutebotLED{} }

// String implements proto.Message.
func (m *CutebotLED) String() string { return proto.CompactTextString(m) }

// CutebotTrackingQuery reads the line tracking sensors.
type CutebotTrackingQuery struct {
}

// NewMessage implements Message.
func (m *CutebotTrackingQuery) NewMessage() fx.Message { return &CutebotTrackingQuery{} }

// TypeID implements SerializableMessage.
func (m *CutebotTrackingQuery) TypeID() uint32 { return CutebotTrackingQueryTypeID }

// Serializable implements SerializableMessage.
func (m *CutebotTrackingQuery) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CutebotTrackingQuery) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CutebotTrackingQuery) Reset() { *m = CutebotTrackingQuery{} }

// String implements proto.Message.
func (m *CutebotTrackingQuery) String() string { return proto.CompactTextString(m) }

// CutebotTracking replies CutebotTrackingQuery.
type CutebotTracking struct {
	State uint32 `protobuf:"varint,1,opt,name=state,proto3" json:"state,omitempty"`
}

// NewMessage implements Message.
func (m *CutebotTracking) NewMessage() fx.Message { return &CutebotTracking{} }

// TypeID implements SerializableMessage.
func (m *CutebotTracking) TypeID() uint32 { return CutebotTrackingTypeID }

// Serializable implements SerializableMessage.
func (m *CutebotTracking) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CutebotTracking) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CutebotTracking) Reset() { *m = CutebotTracking{} }

// String implements proto.Message.
func (m *CutebotTracking) String() string { return proto.CompactTextString(m) }

// CutebotOnTrackQuery tests the line tracking sensors against a mask.
type CutebotOnTrackQuery struct {
	Mask uint32 `protobuf:"varint,1,opt,name=mask,proto3" json:"mask,omitempty"`
}

// NewMessage implements Message.
func (m *CutebotOnTrackQuery) NewMessage() fx.Message { return &CutebotOnTrackQuery{} }

// TypeID implements SerializableMessage.
func (m *CutebotOnTrackQuery) TypeID() uint32 { return CutebotOnTrackQueryTypeID }

// Serializable implements SerializableMessage.
func (m *CutebotOnTrackQuery) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CutebotOnTrackQuery) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CutebotOnTrackQuery) Reset() { *m = CutebotOnTrackQuery{} }

// String implements proto.Message.
func (m *CutebotOnTrackQuery) String() string { return proto.CompactTextString(m) }

// CutebotOnTrack replies CutebotOnTrackQuery.
type CutebotOnTrack struct {
	OnTrack bool `protobuf:"varint,1,opt,name=on_track,json=onTrack,proto3" json:"on_track,omitempty"`
}

// NewMessage implements Message.
func (m *CutebotOnTrack) NewMessage() fx.Message { return &CutebotOnTrack{} }

// TypeID implements SerializableMessage.
func (m *CutebotOnTrack) TypeID() uint32 { return CutebotOnTrackTypeID }

// Serializable implements SerializableMessage.
func (m *CutebotOnTrack) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CutebotOnTrack) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CutebotOnTrack) Reset() { *m = CutebotOnTrack{} }

// String implements proto.Message.
func (m *CutebotOnTrack) String() string { return proto.CompactTextString(m) }

// CutebotDistanceQuery measures the distance with the ultrasonic sensor.
type CutebotDistanceQuery struct {
}

// NewMessage implements Message.
func (m *CutebotDistanceQuery) NewMessage() fx.Message { return &CutebotDistanceQuery{} }

// TypeID implements SerializableMessage.
func (m *CutebotDistanceQuery) TypeID() uint32 { return CutebotDistanceQueryTypeID }

// Serializable implements SerializableMessage.
func (m *CutebotDistanceQuery) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CutebotDistanceQuery) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CutebotDistanceQuery) Reset() { *m = CutebotDistanceQuery{} }

// String implements proto.Message.
func (m *CutebotDistanceQuery) String() string { return proto.CompactTextString(m) }

// CutebotDistance replies CutebotDistanceQuery.
type CutebotDistance struct {
	Cm      int32 `protobuf:"varint,1,opt,name=cm,proto3" json:"cm,omitempty"`
	InRange bool  `protobuf:"varint,2,opt,name=in_range,json=inRange,proto3" json:"in_range,omitempty"`
}

// NewMessage implements Message.
func (m *CutebotDistance) NewMessage() fx.Message { return &CutebotDistance{} }

// TypeID implements SerializableMessage.
func (m *CutebotDistance) TypeID() uint32 { return CutebotDistanceTypeID }

// Serializable implements SerializableMessage.
func (m *CutebotDistance) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CutebotDistance) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CutebotDistance) Reset() { *m = CutebotDistance{} }

// String implements proto.Message.
func (m *CutebotDistance) String() string { return proto.CompactTextString(m) }

// CutebotMotion is the event reporting the state of a move.
type CutebotMotion struct {
	Moving       bool   `protobuf:"varint,1,opt,name=moving,proto3" json:"moving,omitempty"`
	Acknowledged bool   `protobuf:"varint,2,opt,name=acknowledged,proto3" json:"acknowledged,omitempty"`
	Canceled     bool   `protobuf:"varint,3,opt,name=canceled,proto3" json:"canceled,omitempty"`
	DistanceMm   uint32 `protobuf:"varint,4,opt,name=distance_mm,json=distanceMm,proto3" json:"distance_mm,omitempty"`
	SpeedMmS     uint32 `protobuf:"varint,5,opt,name=speed_mm_s,json=speedMmS,proto3" json:"speed_mm_s,omitempty"`
	Direction    uint32 `protobuf:"varint,6,opt,name=direction,proto3" json:"direction,omitempty"`
	ElapsedMs    uint32 `protobuf:"varint,7,opt,name=elapsed_ms,json=elapsedMs,proto3" json:"elapsed_ms,omitempty"`
}

// NewMessage implements Message.
func (m *CutebotMotion) NewMessage() fx.Message { return &CutebotMotion{} }

// TypeID implements SerializableMessage.
func (m *CutebotMotion) TypeID() uint32 { return CutebotMotionEventTypeID }

// Serializable implements SerializableMessage.
func (m *CutebotMotion) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CutebotMotion) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CutebotMotion) Reset() { *m = CutebotMotion{} }

// String implements proto.Message.
func (m *CutebotMotion) String() string { return proto.CompactTextString(m) }

// Cutebot TypeIDs
const (
	CutebotSpeedTypeID         uint32 = GroupCutebot | 0x0000
	CutebotStopTypeID          uint32 = GroupCutebot | 0x0001
	CutebotMoveTypeID          uint32 = GroupCutebot | 0x0002
	CutebotServoTypeTypeID     uint32 = GroupCutebot | 0x0003
	CutebotServoAngleTypeID    uint32 = GroupCutebot | 0x0004
	CutebotLEDTypeID           uint32 = GroupCutebot | 0x0005
	CutebotTrackingQueryTypeID uint32 = GroupCutebot | 0x0006
	CutebotTrackingTypeID      uint32 = CutebotTrackingQueryTypeID | TypeIDMaskReply
	CutebotOnTrackQueryTypeID  uint32 = GroupCutebot | 0x0007
	CutebotOnTrackTypeID       uint32 = CutebotOnTrackQueryTypeID | TypeIDMaskReply
	CutebotDistanceQueryTypeID uint32 = GroupCutebot | 0x0008
	CutebotDistanceTypeID      uint32 = CutebotDistanceQueryTypeID | TypeIDMaskReply
	CutebotMotionEventTypeID   uint32 = GroupCutebot | TypeIDKindEvent | 0x0000
)

func init() {
	MessageTypes[CutebotSpeedTypeID] = (*CutebotSpeed)(nil)
	MessageTypes[CutebotStopTypeID] = (*CutebotStop)(nil)
	MessageTypes[CutebotMoveTypeID] = (*CutebotMove)(nil)
	MessageTypes[CutebotServoTypeTypeID] = (*CutebotServoType)(nil)
	MessageTypes[CutebotServoAngleTypeID] = (*CutebotServoAngle)(nil)
	MessageTypes[CutebotLEDTypeID] = (*CutebotLED)(nil)
	MessageTypes[CutebotTrackingQueryTypeID] = (*CutebotTrackingQuery)(nil)
	MessageTypes[CutebotTrackingTypeID] = (*CutebotTracking)(nil)
	MessageTypes[CutebotOnTrackQueryTypeID] = (*CutebotOnTrackQuery)(nil)
	MessageTypes[CutebotOnTrackTypeID] = (*CutebotOnTrack)(nil)
	MessageTypes[CutebotDistanceQueryTypeID] = (*CutebotDistanceQuery)(nil)
	MessageTypes[CutebotDistanceTypeID] = (*CutebotDistance)(nil)
	MessageTypes[CutebotMotionEventTypeID] = (*CutebotMotion)(nil)
}
