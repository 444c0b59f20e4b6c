package config

// Gesture detection modes for edge and card-switch gestures
const (
	DetectFlick = 0 // switch once when a flick gesture finishes
	DetectSlide = 1 // switch once while the stroke is held, latched until finish
	DetectFluid = 2 // forward continuous feedback to the card manager
)

// Settings is the flat preference snapshot consumed by the shell core.
// Keys are case insensitive; the tag names are the canonical spellings.
type Settings struct {
	// Gesture routing
	GestureDetectionMode           int     `mapstructure:"gestureDetectionMode" yaml:"gestureDetectionMode" json:"gestureDetectionMode"`
	EnableNextPrevGestures         bool    `mapstructure:"sysUiEnableNextPrevGestures" yaml:"sysUiEnableNextPrevGestures" json:"sysUiEnableNextPrevGestures"`
	EnableAppSwitchGestures        bool    `mapstructure:"sysUiEnableAppSwitchGestures" yaml:"sysUiEnableAppSwitchGestures" json:"sysUiEnableAppSwitchGestures"`
	GestureBorderSize              float64 `mapstructure:"gestureBorderSize" yaml:"gestureBorderSize" json:"gestureBorderSize"`
	GestureTriggerDistance         float64 `mapstructure:"gestureTriggerDistance" yaml:"gestureTriggerDistance" json:"gestureTriggerDistance"`
	GestureTriggerDistanceKeyboard float64 `mapstructure:"gestureTriggerDistanceKeyboard" yaml:"gestureTriggerDistanceKeyboard" json:"gestureTriggerDistanceKeyboard"`

	// Flick classification, pixels per frame
	FlickMinDelta float64 `mapstructure:"flickMinDelta" yaml:"flickMinDelta" json:"flickMinDelta"`
	FlickMaxDelta float64 `mapstructure:"flickMaxDelta" yaml:"flickMaxDelta" json:"flickMaxDelta"`
	FlickDeadZone float64 `mapstructure:"flickDeadZone" yaml:"flickDeadZone" json:"flickDeadZone"`

	// Screen, in canonical (Up) orientation device pixels
	ScreenWidth             float64 `mapstructure:"screenWidth" yaml:"screenWidth" json:"screenWidth"`
	ScreenHeight            float64 `mapstructure:"screenHeight" yaml:"screenHeight" json:"screenHeight"`
	OrientationOffsetLeftX  float64 `mapstructure:"orientationOffsetLeftX" yaml:"orientationOffsetLeftX" json:"orientationOffsetLeftX"`
	OrientationOffsetLeftY  float64 `mapstructure:"orientationOffsetLeftY" yaml:"orientationOffsetLeftY" json:"orientationOffsetLeftY"`
	OrientationOffsetRightX float64 `mapstructure:"orientationOffsetRightX" yaml:"orientationOffsetRightX" json:"orientationOffsetRightX"`
	OrientationOffsetRightY float64 `mapstructure:"orientationOffsetRightY" yaml:"orientationOffsetRightY" json:"orientationOffsetRightY"`
	MetaBandHeight          float64 `mapstructure:"metaBandHeight" yaml:"metaBandHeight" json:"metaBandHeight"`

	// Tap and pinch
	TapSlop          float64 `mapstructure:"tapSlop" yaml:"tapSlop" json:"tapSlop"`
	TapMaxDurationMs int     `mapstructure:"tapMaxDurationMs" yaml:"tapMaxDurationMs" json:"tapMaxDurationMs"`
	PinchThreshold   float64 `mapstructure:"pinchThreshold" yaml:"pinchThreshold" json:"pinchThreshold"`

	// Card manager
	ReorderHoldMs          int     `mapstructure:"reorderHoldMs" yaml:"reorderHoldMs" json:"reorderHoldMs"`
	DragSlop               float64 `mapstructure:"dragSlop" yaml:"dragSlop" json:"dragSlop"`
	SceneTransitionMs      int     `mapstructure:"sceneTransitionMs" yaml:"sceneTransitionMs" json:"sceneTransitionMs"`
	PlacementMs            int     `mapstructure:"placementMs" yaml:"placementMs" json:"placementMs"`
	FocusTimeoutMs         int     `mapstructure:"focusTimeoutMs" yaml:"focusTimeoutMs" json:"focusTimeoutMs"`
	AnimationTickMs        int     `mapstructure:"animationTickMs" yaml:"animationTickMs" json:"animationTickMs"`
	SwitchCommitFraction   float64 `mapstructure:"switchCommitFraction" yaml:"switchCommitFraction" json:"switchCommitFraction"`
	MinimizeCommitFraction float64 `mapstructure:"minimizeCommitFraction" yaml:"minimizeCommitFraction" json:"minimizeCommitFraction"`
	CardScale              float64 `mapstructure:"cardScale" yaml:"cardScale" json:"cardScale"`
	CardSpacing            float64 `mapstructure:"cardSpacing" yaml:"cardSpacing" json:"cardSpacing"`
	GroupJoinRadius        float64 `mapstructure:"groupJoinRadius" yaml:"groupJoinRadius" json:"groupJoinRadius"`

	// Direct rendering
	DirectRenderingLayers int `mapstructure:"directRenderingLayers" yaml:"directRenderingLayers" json:"directRenderingLayers"`
}

// Defaults returns the built-in settings
func Defaults() Settings {
	return Settings{
		GestureDetectionMode:           DetectFlick,
		EnableNextPrevGestures:         true,
		EnableAppSwitchGestures:        true,
		GestureBorderSize:              10,
		GestureTriggerDistance:         35,
		GestureTriggerDistanceKeyboard: 55,
		FlickMinDelta:                  25,
		FlickMaxDelta:                  100,
		FlickDeadZone:                  5,
		ScreenWidth:                    1024,
		ScreenHeight:                   768,
		OrientationOffsetLeftX:         0,
		OrientationOffsetLeftY:         -2,
		OrientationOffsetRightX:        0,
		OrientationOffsetRightY:        2,
		MetaBandHeight:                 40,
		TapSlop:                        12,
		TapMaxDurationMs:               300,
		PinchThreshold:                 0.10,
		ReorderHoldMs:                  500,
		DragSlop:                       12,
		SceneTransitionMs:              300,
		PlacementMs:                    200,
		FocusTimeoutMs:                 1000,
		AnimationTickMs:                16,
		SwitchCommitFraction:           0.3,
		MinimizeCommitFraction:         0.25,
		CardScale:                      0.6,
		CardSpacing:                    24,
		GroupJoinRadius:                60,
		DirectRenderingLayers:          3,
	}
}

// TriggerDistance returns the edge trigger threshold for the keyboard state
func (s *Settings) TriggerDistance(keyboardOpen bool) float64 {
	if keyboardOpen {
		return s.GestureTriggerDistanceKeyboard
	}
	return s.GestureTriggerDistance
}
