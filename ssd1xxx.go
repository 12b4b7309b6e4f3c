package ssd1309

// Fundamental, addressing, hardware configuration and timing commands.
const (
	setLowColumn          = 0x00
	setHighColumn         = 0x10
	setMemoryMode         = 0x20
	setColumnAddr         = 0x21
	setPageAddr           = 0x22
	setStartLine          = 0x40
	setContrast           = 0x81
	setChargePump         = 0x8D
	setSegmentNormal      = 0xA0
	setSegmentRemap       = 0xA1
	setDisplayAllOnResume = 0xA4
	setDisplayAllOn       = 0xA5
	setNormalDisplay      = 0xA6
	setInvertDisplay      = 0xA7
	setMultiplexRatio     = 0xA8
	setDisplayOff         = 0xAE
	setDisplayOn          = 0xAF
	setPageStart          = 0xB0
	setComScanInc         = 0xC0
	setComScanDec         = 0xC8
	setDisplayOffset      = 0xD3
	setDisplayClockDiv    = 0xD5
	setPrecharge          = 0xD9
	setComPins            = 0xDA
	setVComDeselect       = 0xDB
	nop                   = 0xE3
)

// Command parameters used by the init sequence.
const (
	clockDivDefault  = 0x80 // divide ratio 1, oscillator frequency 8
	chargePumpEnable = 0x14
	memoryModeHoriz  = 0x00
	contrastMax      = 0xFF
	prechargeDefault = 0xF1
	vcomDeselect     = 0x40
)

// I²C control bytes.
const (
	i2cControlCommand = 0x80 // Co=1, D/C#=0
	i2cControlData    = 0x40 // Co=0, D/C#=1
)
