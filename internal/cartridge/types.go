package cartridge

import "fmt"

// Type is the cartridge type byte found at 0x0147.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBATT      Type = 0x0D
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	POCKETCAMERA      Type = 0x1F
	BANDAITAMA5       Type = 0xFD
	HUDSONHUC3        Type = 0xFE
	HUDSONHUC1        Type = 0xFF
)

// Controller identifies the memory bank controller family.
type Controller uint8

const (
	ControllerUnknown Controller = iota
	ControllerROM
	ControllerMBC1
	ControllerMBC2
	ControllerMBC3
	ControllerMBC5
	ControllerMMM01
	ControllerCamera
	ControllerTAMA5
	ControllerHuC3
	ControllerHuC1
)

var controllerNames = [...]string{
	ControllerUnknown: "Unknown",
	ControllerROM:     "ROM",
	ControllerMBC1:    "MBC1",
	ControllerMBC2:    "MBC2",
	ControllerMBC3:    "MBC3",
	ControllerMBC5:    "MBC5",
	ControllerMMM01:   "MMM01",
	ControllerCamera:  "Pocket Camera",
	ControllerTAMA5:   "TAMA5",
	ControllerHuC3:    "HuC3",
	ControllerHuC1:    "HuC1",
}

func (c Controller) String() string {
	if int(c) < len(controllerNames) {
		return controllerNames[c]
	}
	return "Unknown"
}

// Feature is a bit set of the extra hardware present on a cartridge.
type Feature uint8

const (
	FeatureRAM Feature = 1 << iota
	FeatureBattery
	FeatureTimer
	FeatureRumble
)

type typeInfo struct {
	controller Controller
	features   Feature
}

var typeTable = map[Type]typeInfo{
	ROM:               {ControllerROM, 0},
	MBC1:              {ControllerMBC1, 0},
	MBC1RAM:           {ControllerMBC1, FeatureRAM},
	MBC1RAMBATT:       {ControllerMBC1, FeatureRAM | FeatureBattery},
	MBC2:              {ControllerMBC2, 0},
	MBC2BATT:          {ControllerMBC2, FeatureBattery},
	ROMRAM:            {ControllerROM, FeatureRAM},
	ROMRAMBATT:        {ControllerROM, FeatureRAM | FeatureBattery},
	MMM01:             {ControllerMMM01, 0},
	MMM01RAM:          {ControllerMMM01, FeatureRAM},
	MMM01RAMBATT:      {ControllerMMM01, FeatureRAM | FeatureBattery},
	MBC3TIMERBATT:     {ControllerMBC3, FeatureTimer | FeatureBattery},
	MBC3TIMERRAMBATT:  {ControllerMBC3, FeatureTimer | FeatureRAM | FeatureBattery},
	MBC3:              {ControllerMBC3, 0},
	MBC3RAM:           {ControllerMBC3, FeatureRAM},
	MBC3RAMBATT:       {ControllerMBC3, FeatureRAM | FeatureBattery},
	MBC5:              {ControllerMBC5, 0},
	MBC5RAM:           {ControllerMBC5, FeatureRAM},
	MBC5RAMBATT:       {ControllerMBC5, FeatureRAM | FeatureBattery},
	MBC5RUMBLE:        {ControllerMBC5, FeatureRumble},
	MBC5RUMBLERAM:     {ControllerMBC5, FeatureRumble | FeatureRAM},
	MBC5RUMBLERAMBATT: {ControllerMBC5, FeatureRumble | FeatureRAM | FeatureBattery},
	POCKETCAMERA:      {ControllerCamera, FeatureRAM},
	BANDAITAMA5:       {ControllerTAMA5, 0},
	HUDSONHUC3:        {ControllerHuC3, FeatureRAM | FeatureBattery},
	HUDSONHUC1:        {ControllerHuC1, FeatureRAM | FeatureBattery},
}

// Controller returns the controller family for the type, or
// ControllerUnknown for codes not in the table.
func (t Type) Controller() Controller {
	return typeTable[t].controller
}

// Features returns the extra hardware the type carries.
func (t Type) Features() Feature {
	return typeTable[t].features
}

// Has reports whether the type carries feature f.
func (t Type) Has(f Feature) bool {
	return t.Features()&f != 0
}

func (t Type) String() string {
	info, ok := typeTable[t]
	if !ok {
		return fmt.Sprintf("Unknown(0x%02X)", uint8(t))
	}
	s := info.controller.String()
	if info.features&FeatureTimer != 0 {
		s += "+TIMER"
	}
	if info.features&FeatureRumble != 0 {
		s += "+RUMBLE"
	}
	if info.features&FeatureRAM != 0 {
		s += "+RAM"
	}
	if info.features&FeatureBattery != 0 {
		s += "+BATTERY"
	}
	return s
}
