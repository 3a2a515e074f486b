package bgcraft

// Effect is the lifecycle contract every background effect implements. The
// builder keeps at most one live Effect at a time and is the only caller of
// these methods.
//
// Start and Stop are idempotent. Stop leaves internal state intact so a
// subsequent Start resumes rather than resets. Destroy releases pointer
// listeners and retained buffers; the instance need not be restartable
// afterward. All methods must tolerate a zero-area surface.
type Effect interface {
	// Start begins animating, or performs a single render pass for a
	// static effect.
	Start()
	// Stop halts animation, keeping state for a later resume.
	Stop()
	// Destroy stops the effect and releases listeners and buffers.
	Destroy()
	// Resize recomputes geometry derived from the surface dimensions
	// without discarding unrelated state. A non-animating effect must
	// render one frame so the preview reflects the new size immediately.
	Resize()
	// Draw performs exactly one render pass of the current state. Safe to
	// call whether or not the effect is animating.
	Draw()
	// Advance steps the simulation by dt seconds. Driven by the builder's
	// loop; only called while Animating reports true.
	Advance(dt float64)
	// Animating reports whether the effect wants per-frame advancement.
	Animating() bool
	// ApplyOptions merges a partial option update into internal state
	// without tearing the instance down. Options whose change requires
	// structural reinitialization (particle counts and the like)
	// reinitialize only the affected collections.
	ApplyOptions(partial Options)
}

// Constructor builds an Effect on the given surface with merged options.
// Constructors validate options with structural requirements synchronously
// and must not assume the surface has non-zero dimensions. A returned error
// is a fatal configuration failure for this instantiation; the builder
// aborts the selection and stays usable.
type Constructor func(s *Surface, opts Options) (Effect, error)

// Loop is a cancellable repeating task: the explicit scheduler behind effect
// animation. The host calls Tick once per frame; the task runs only between
// Start and Stop. Cancellation is synchronous, so a task can never fire after
// Stop returns.
type Loop struct {
	task    func(dt float64)
	running bool
}

// NewLoop creates a stopped loop around task.
func NewLoop(task func(dt float64)) *Loop {
	return &Loop{task: task}
}

// Start arms the loop. Idempotent.
func (l *Loop) Start() {
	l.running = true
}

// Stop disarms the loop. Idempotent.
func (l *Loop) Stop() {
	l.running = false
}

// Running reports whether Tick currently forwards to the task.
func (l *Loop) Running() bool {
	return l.running
}

// Tick runs the task with dt if the loop is running.
func (l *Loop) Tick(dt float64) {
	if l.running && l.task != nil {
		l.task(dt)
	}
}
