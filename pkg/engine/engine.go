package engine

import (
	"fmt"
	"image"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"flycam/internal/logger"
	"flycam/internal/util"
	"flycam/pkg/assets"
	"flycam/pkg/camera"
	"flycam/pkg/config"
	"flycam/pkg/controls"
	"flycam/pkg/scene"
)

// statsInterval is how often frame statistics are logged at debug level
const statsInterval = 5 * time.Second

// Engine owns the window, the camera and the render loop
type Engine struct {
	window     *glfw.Window
	config     *config.Config
	logger     *logger.Logger
	camera     *camera.Camera
	input      *InputHandler
	clock      *controls.FrameClock
	program    *ShaderProgram
	renderer   Renderer
	frameTimer *util.FrameTimer
	isRunning  bool
	frameRate  int
}

// NewEngine creates the window and every GPU resource. Any failure aborts startup so
// nothing is ever rendered with a partial setup.
func NewEngine(cfg *config.Config, log *logger.Logger) (*Engine, error) {
	cam, err := newCamera(cfg.Camera)
	if err != nil {
		return nil, fmt.Errorf("failed to create camera: %w", err)
	}

	bindings, err := controls.ParseBindings(cfg.Controls)
	if err != nil {
		return nil, fmt.Errorf("failed to parse key bindings: %w", err)
	}

	mesh, err := assets.MeshByName(cfg.Scene.Mesh)
	if err != nil {
		return nil, err
	}

	pixels, err := assets.LoadImage(cfg.Scene.Texture, cfg.Scene.FlipTexture)
	if err != nil {
		return nil, err
	}

	vertexSource, err := assets.ReadShaderSource(cfg.Scene.VertexShader, defaultVertexShaderSource)
	if err != nil {
		return nil, err
	}
	fragmentSource, err := assets.ReadShaderSource(cfg.Scene.FragmentShader, defaultFragmentShaderSource)
	if err != nil {
		return nil, err
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// Set window hints
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	window.MakeContextCurrent()
	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Infof("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	e := &Engine{
		window:     window,
		config:     cfg,
		logger:     log,
		camera:     cam,
		clock:      controls.NewFrameClock(cfg.Camera.MaxFrameDelta),
		frameTimer: util.NewFrameTimer(120),
		frameRate:  cfg.Window.FrameRate,
	}

	if err := e.initGraphics(mesh, vertexSource, fragmentSource, pixels); err != nil {
		e.cleanup()
		return nil, err
	}

	e.input, err = NewInputHandler(window, bindings, cfg.Camera.MouseLook)
	if err != nil {
		e.cleanup()
		return nil, err
	}

	window.SetFramebufferSizeCallback(e.resizeCallback)
	window.SetFocusCallback(e.focusCallback)

	return e, nil
}

func newCamera(cfg config.CameraConfig) (*camera.Camera, error) {
	return camera.New(
		mgl32.Vec3(cfg.Position),
		mgl32.Vec3(cfg.Target),
		camera.WithMovementSpeed(cfg.MovementSpeed),
		camera.WithRotationRate(cfg.RotationRate),
		camera.WithMouseSensitivity(cfg.MouseSensitivity),
		camera.WithRenormalize(cfg.Renormalize),
	)
}

// initGraphics compiles the program and uploads the scene
func (e *Engine) initGraphics(mesh assets.Mesh, vertexSource, fragmentSource string, pixels *image.NRGBA) error {
	program, err := NewShaderProgram(vertexSource, fragmentSource)
	if err != nil {
		return err
	}
	e.program = program

	width, height := e.window.GetFramebufferSize()
	placement := scene.Placement{
		Position:  mgl32.Vec3(e.config.Scene.ModelPosition),
		RotationY: e.config.Scene.ModelRotationY,
	}
	lens := scene.Lens{
		FieldOfView: e.config.Scene.FieldOfView,
		Near:        e.config.Scene.Near,
		Far:         e.config.Scene.Far,
	}

	renderer, err := NewMeshRenderer(program, mesh, pixels, placement, lens, e.config.Window.ClearColor, width, height)
	if err != nil {
		return fmt.Errorf("failed to initialize %s renderer: %w", mesh.Name, err)
	}
	e.renderer = renderer

	e.logger.Infof("Loaded %s mesh (%d vertices) with %dx%d texture",
		mesh.Name, mesh.VertexCount(), pixels.Bounds().Dx(), pixels.Bounds().Dy())

	ndc := scene.ClipPosition(placement.Model(), e.camera.ViewMatrix(), lens.Projection(width, height), mgl32.Vec3{})
	if !scene.OnScreen(ndc) {
		e.logger.Warnf("The %s is outside the initial view (NDC %.2f, %.2f, %.2f)", mesh.Name, ndc.X(), ndc.Y(), ndc.Z())
	}
	return nil
}

// Run starts the main render loop and returns when the window closes
func (e *Engine) Run() error {
	e.isRunning = true
	lastStats := time.Now()
	defer e.cleanup()

	for e.isRunning && !e.window.ShouldClose() {
		frameStart := time.Now()
		deltaTime := e.clock.Tick(glfw.GetTime())

		e.processInput(deltaTime)

		if err := e.renderer.Render(e.camera.ViewMatrix()); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}

		e.window.SwapBuffers()
		glfw.PollEvents()

		// Cap the frame rate
		if budget := util.FrameBudget(e.frameRate); budget > 0 {
			if frameTime := time.Since(frameStart); frameTime < budget {
				time.Sleep(budget - frameTime)
			}
		}

		e.frameTimer.Add(time.Since(frameStart).Seconds())
		if time.Since(lastStats) >= statsInterval {
			lastStats = time.Now()
			p := e.camera.Position()
			e.logger.Debugf("%.1f fps, camera at (%.2f, %.2f, %.2f)", e.frameTimer.FPS(), p.X(), p.Y(), p.Z())
		}
	}

	return nil
}

// processInput handles user input for one frame
func (e *Engine) processInput(deltaTime float32) {
	if e.input.QuitRequested() {
		e.isRunning = false
		return
	}

	e.input.Apply(e.camera, deltaTime)

	if e.input.MouseLook() {
		dx, dy := e.input.MouseDelta()
		e.camera.ProcessMouse(dx, dy)
	}
}

func (e *Engine) resizeCallback(_ *glfw.Window, width int, height int) {
	if width == 0 || height == 0 {
		return
	}
	if err := e.renderer.Resize(width, height); err != nil {
		e.logger.Warnf("Resize to %dx%d failed: %v", width, height, err)
	}
}

// focusCallback restarts frame timing and mouse tracking when the window comes back
func (e *Engine) focusCallback(_ *glfw.Window, focused bool) {
	if !focused {
		return
	}
	e.clock.Reset()
	e.input.Recapture()
}

// cleanup performs necessary cleanup before exiting
func (e *Engine) cleanup() {
	e.logger.Info("Shutting down engine...")
	if e.renderer != nil {
		e.renderer.Close()
		e.renderer = nil
	}
	if e.program != nil {
		e.program.Delete()
		e.program = nil
	}
	if e.window != nil {
		e.window.Destroy()
		e.window = nil
	}
	glfw.Terminate()
}
