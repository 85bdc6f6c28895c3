package motion

// Walk animation parameters shared by every direction
const (
	WalkFrames    = 6
	WalkFrameRate = 10
)

// Animator is the part of the rendering substrate that moves and animates the actor
type Animator interface {
	SetVelocity(vx, vy float64)
	PlayAnimation(key string)
	StopAnimation()
	SetTexture(key string)
}

// Animation describes one looping walk cycle the substrate must register
type Animation struct {
	Key       string `json:"key"`
	Frames    int    `json:"frames"`
	FrameRate int    `json:"frame_rate"`
	Loop      bool   `json:"loop"`
}

// WalkKey returns the animation key for walking toward d
func WalkKey(d Direction) string {
	return "walk_" + d.String()
}

// IdleKey returns the static texture key for standing while facing d
func IdleKey(d Direction) string {
	return "idle_" + d.String()
}

// WalkAnimations returns the eight walk cycles
func WalkAnimations() []Animation {
	anims := make([]Animation, 0, 8)
	for _, d := range Compass() {
		anims = append(anims, Animation{Key: WalkKey(d), Frames: WalkFrames, FrameRate: WalkFrameRate, Loop: true})
	}
	return anims
}

// State is a snapshot of the actor's motion
type State struct {
	Facing    Direction `json:"facing"`
	Walking   bool      `json:"walking"`
	Suspended bool      `json:"suspended"`
	VX        float64   `json:"vx"`
	VY        float64   `json:"vy"`
	Animation string    `json:"animation"`
}

// Controller turns per-tick input into actor velocity and drives the
// walk/idle animation state machine. Substrate calls are made only when the
// machine changes state, so a held direction does not restart its animation.
type Controller struct {
	animator  Animator
	speed     float64
	facing    Direction
	walking   bool
	suspended bool
	vx, vy    float64
}

// NewController creates a controller facing south and shows the matching idle texture
func NewController(animator Animator, speed float64) *Controller {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	c := &Controller{animator: animator, speed: speed, facing: South}
	animator.SetTexture(IdleKey(c.facing))
	return c
}

// Update applies one tick of input. Input is ignored while suspended.
func (c *Controller) Update(in Input) {
	if c.suspended {
		return
	}

	vx, vy, dir := Resolve(in, c.speed)
	if dir == None {
		if c.walking {
			c.stop()
		}
		return
	}

	if c.walking && dir == c.facing {
		return
	}
	c.facing = dir
	c.walking = true
	c.vx, c.vy = vx, vy
	c.animator.SetVelocity(vx, vy)
	c.animator.PlayAnimation(WalkKey(dir))
}

// Suspend forces the actor to stand still facing its last direction until Resume
func (c *Controller) Suspend() {
	if c.suspended {
		return
	}
	c.suspended = true
	c.stop()
}

// Resume lets input move the actor again from the next Update
func (c *Controller) Resume() {
	c.suspended = false
}

func (c *Controller) stop() {
	c.walking = false
	c.vx, c.vy = 0, 0
	c.animator.SetVelocity(0, 0)
	c.animator.StopAnimation()
	c.animator.SetTexture(IdleKey(c.facing))
}

// Facing returns the last resolved direction
func (c *Controller) Facing() Direction {
	return c.facing
}

// Suspended reports whether input is being ignored
func (c *Controller) Suspended() bool {
	return c.suspended
}

// Speed returns the per-axis speed
func (c *Controller) Speed() float64 {
	return c.speed
}

// State returns a snapshot of the motion state
func (c *Controller) State() State {
	anim := IdleKey(c.facing)
	if c.walking {
		anim = WalkKey(c.facing)
	}
	return State{
		Facing:    c.facing,
		Walking:   c.walking,
		Suspended: c.suspended,
		VX:        c.vx,
		VY:        c.vy,
		Animation: anim,
	}
}
