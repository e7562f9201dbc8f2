package config

import "time"

const (
	WindowWidth  = 640
	WindowHeight = 640
	WindowTitle  = "Gauges - Esc/Q: Quit"

	FPS = 60

	// Carousel
	CarouselResumeDelay = 5000 * time.Millisecond

	// Shared chart defaults
	Easing    = "quarticOut"
	BaseColor = "red"
	BaseValue = 100

	// Activity (ring) chart
	RingLineCap       = "round"
	RingArcGap        = 12
	RingInnerRadius   = 50
	RingWidth         = 32
	RingBottomColor   = "#eee"
	RingAnimationTime = 1000 // ms
	RingStartAngle    = 0    // degrees

	TitleFontFamily    = "sans-serif"
	TitleFontSize      = 22
	TitleColor         = "black"
	TitleFontWeight    = "normal"
	TitleFormatter     = "{name}"
	SubTitleFontSize   = 32
	SubTitleColor      = "auto"
	SubTitleFontWeight = "bold"
	SubTitleFormatter  = "{percent}%"

	// Water (wave) chart
	WaterAnimationTime  = 3000 // ms
	WaterCycle          = 160
	WaterWaveHeight     = 8
	WaterOffsetRange    = 0.05
	WaterWaveColor      = "rgba(30,144,255,0.8)"
	WaterInnerRadius    = 100
	WaterInnerWidth     = 4
	WaterInnerColor     = "#1e90ff"
	WaterOuterRadius    = 112
	WaterOuterWidth     = 2
	WaterOuterColor     = "#87cefa"
	WaterFontSize       = 40
	WaterTextColor      = "#333"
	WaterTextFormatter  = "{value}%"
	WaterTextFontWeight = "bold"

	// Audio feed
	FeedInterval    = 2 * time.Second
	VisualRingSize  = 8192
	SmoothingFactor = 0.6

	// Terminal preview
	TermCellWidth = 4 // canvas pixels per terminal column
)
