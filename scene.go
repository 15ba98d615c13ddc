package imageview

import (
	"image/color"
	"log/slog"
)

// Default scene settings, matching the original demo.
const (
	DefaultSeed     uint64 = 271828
	DefaultTickRate        = 60

	DefaultImagePath = "/dragon1.png"
	DefaultFontPath  = "/LiberationMono-Regular.ttf"
	DefaultSoundPath = "/sound.ogg"

	DefaultHeadline = "Hello world!"
	DefaultCaption  = "This text is 32 pixels high"
)

// Default colours of the scene.
var (
	DefaultClearColor   = color.RGBA{R: 26, G: 51, B: 77, A: 255} // (0.1, 0.2, 0.3)
	DefaultCaptionColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	DefaultBannerColor  = color.RGBA{A: 255}
)

// SceneConfig configures NewScene. Start from DefaultSceneConfig.
type SceneConfig struct {
	ImagePath string
	FontPath  string
	SoundPath string

	Headline     string
	HeadlineSize float64
	Caption      string
	CaptionSize  float64
	CaptionColor color.RGBA
	Banner       Rect
	BannerColor  color.RGBA
	ClearColor   color.RGBA

	Seed       uint64
	TickRate   int
	LowerBound int
	UpperBound int
	Walker     Walker
}

// DefaultSceneConfig returns the configuration of the original demo.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		ImagePath:    DefaultImagePath,
		FontPath:     DefaultFontPath,
		SoundPath:    DefaultSoundPath,
		Headline:     DefaultHeadline,
		HeadlineSize: 48,
		Caption:      DefaultCaption,
		CaptionSize:  32,
		CaptionColor: DefaultCaptionColor,
		Banner:       Rect{X: 0, Y: 256, W: 500, H: 32},
		BannerColor:  DefaultBannerColor,
		ClearColor:   DefaultClearColor,
		Seed:         DefaultSeed,
		TickRate:     DefaultTickRate,
		LowerBound:   DefaultLowerBound,
		UpperBound:   DefaultUpperBound,
		Walker:       DefaultWalker(),
	}
}

// Scene is the demo's state: a brightness oscillator, the random stream
// behind the crazy lines, and the loaded assets.
//
// A Scene is driven by one frame loop: Update once per frame, then Draw.
// It is not safe for concurrent use.
type Scene struct {
	cfg    SceneConfig
	osc    *Oscillator
	rng    *Rand32
	image  ImageHandle
	font   FontHandle
	sound  SoundHandle
	frames uint64
}

// NewScene loads the scene's assets and starts the sound in detached mode.
// A failure to load any asset is returned as-is (a *ResourceLoadError from
// well-behaved loaders) and is meant to be fatal. Playback is fire and
// forget: a player error is logged and the scene runs silent.
func NewScene(cfg SceneConfig, loader Loader, audio AudioPlayer) (*Scene, error) {
	log := Logger()

	img, err := loader.LoadImage(cfg.ImagePath)
	if err != nil {
		return nil, err
	}
	w, h := img.Size()
	log.Info("imageview: image loaded", "path", cfg.ImagePath, "width", w, "height", h)

	font, err := loader.LoadFont(cfg.FontPath)
	if err != nil {
		return nil, err
	}
	log.Info("imageview: font loaded", "path", cfg.FontPath, "name", font.Name())

	sound, err := loader.LoadSound(cfg.SoundPath)
	if err != nil {
		return nil, err
	}
	if err := audio.PlayDetached(sound); err != nil {
		log.Warn("imageview: sound not playing", "path", cfg.SoundPath, "err", err)
	} else {
		log.Info("imageview: sound playing", "path", cfg.SoundPath)
	}

	return &Scene{
		cfg:   cfg,
		osc:   NewOscillator(cfg.LowerBound, cfg.UpperBound),
		rng:   NewRand32(cfg.Seed),
		image: img,
		font:  font,
		sound: sound,
	}, nil
}

// Oscillator returns the scene's brightness oscillator.
func (s *Scene) Oscillator() *Oscillator { return s.osc }

// Frames returns the number of frames drawn so far.
func (s *Scene) Frames() uint64 { return s.frames }

// Update runs every simulation tick that is due on clock.
// It returns the number of ticks run.
func (s *Scene) Update(clock Clock) int {
	n := 0
	for clock.CheckUpdateTime(s.cfg.TickRate) {
		s.osc.Step()
		n++
		if s.osc.Turned() {
			Logger().Info("imageview: oscillator turned",
				slog.Int("value", s.osc.Value()),
				slog.Duration("delta", clock.Delta()),
				slog.Float64("fps", clock.FPS()))
		}
	}
	return n
}

// Draw renders one frame. The first renderer error aborts the frame and is
// returned unchanged.
func (s *Scene) Draw(r Renderer) error {
	c := s.osc.Brightness()
	gray := color.RGBA{R: c, G: c, B: c, A: 255}
	origin := Point{}

	r.BeginFrame(s.cfg.ClearColor)
	r.DrawImage(s.image, origin, gray)
	r.DrawText(s.cfg.Headline, s.font, origin, s.cfg.HeadlineSize, gray)

	r.DrawFilledRect(s.cfg.Banner, s.cfg.BannerColor)
	r.DrawText(s.cfg.Caption, s.font, Point{X: s.cfg.Banner.X, Y: s.cfg.Banner.Y}, s.cfg.CaptionSize, s.cfg.CaptionColor)

	if err := r.DrawPolyline(s.cfg.Walker.Path(s.rng)); err != nil {
		return err
	}
	if err := r.EndFrame(); err != nil {
		return err
	}
	s.frames++
	return nil
}
