package h264

// Level is an H264 level. Every value is ten times the level number, except
// level 1b which is special.
type Level byte

const (
	Level1_b Level = 0
	Level1   Level = 10
	Level1_1 Level = 11
	Level1_2 Level = 12
	Level1_3 Level = 13
	Level2   Level = 20
	Level2_1 Level = 21
	Level2_2 Level = 22
	Level3   Level = 30
	Level3_1 Level = 31
	Level3_2 Level = 32
	Level4   Level = 40
	Level4_1 Level = 41
	Level4_2 Level = 42
	Level5   Level = 50
	Level5_1 Level = 51
	Level5_2 Level = 52
)

var levelNames = map[Level]string{
	Level1_b: "1b",
	Level1:   "1",
	Level1_1: "1.1",
	Level1_2: "1.2",
	Level1_3: "1.3",
	Level2:   "2",
	Level2_1: "2.1",
	Level2_2: "2.2",
	Level3:   "3",
	Level3_1: "3.1",
	Level3_2: "3.2",
	Level4:   "4",
	Level4_1: "4.1",
	Level4_2: "4.2",
	Level5:   "5",
	Level5_1: "5.1",
	Level5_2: "5.2",
}

func (l Level) String() string {
	return levelNames[l]
}

func (l Level) valid() bool {
	_, ok := levelNames[l]
	return ok
}

// Less compares levels, ordering 1b between 1 and 1.1.
func (l Level) Less(other Level) bool {
	if l == Level1_b {
		return other != Level1 && other != Level1_b
	}
	if other == Level1_b {
		return l != Level1
	}
	return l < other
}

func minLevel(a, b Level) Level {
	if a.Less(b) {
		return a
	}
	return b
}

type levelConstraint struct {
	maxMacroblocksPerSecond uint32
	maxMacroblockFrameSize  uint32
	level                   Level
}

// levelConstraints is ITU-T H.264 (02/2016) Table A-1, Level limits.
var levelConstraints = []levelConstraint{
	{1485, 99, Level1},
	{1485, 99, Level1_b},
	{3000, 396, Level1_1},
	{6000, 396, Level1_2},
	{11880, 396, Level1_3},
	{11880, 396, Level2},
	{19800, 792, Level2_1},
	{20250, 1620, Level2_2},
	{40500, 1620, Level3},
	{108000, 3600, Level3_1},
	{216000, 5120, Level3_2},
	{245760, 8192, Level4},
	{245760, 8192, Level4_1},
	{522240, 8704, Level4_2},
	{589824, 22080, Level5},
	{983040, 36864, Level5_1},
	{2073600, 36864, Level5_2},
}

// SupportedLevel returns the highest level a decoder handling frames of up to
// maxFramePixelCount pixels at maxFps frames per second can guarantee.
func SupportedLevel(maxFramePixelCount, maxFps uint32) (Level, bool) {
	const pixelsPerMacroblock = 16 * 16

	for i := len(levelConstraints) - 1; i >= 0; i-- {
		c := levelConstraints[i]

		if c.maxMacroblockFrameSize*pixelsPerMacroblock <= maxFramePixelCount &&
			c.maxMacroblocksPerSecond <= maxFps*c.maxMacroblockFrameSize {
			return c.level, true
		}
	}

	return 0, false
}
