package skeleton

import "math"

const dampEpsilon = 0.001

// damp moves current toward target with a critically damped spring, the
// way a camera follows a subject. vel carries the spring velocity between
// calls. smoothTime is roughly the time to reach the target, in seconds.
func damp(current, vel *float64, target, smoothTime, delta float64) {
	if math.Abs(*current-target) <= dampEpsilon {
		*current = target
		return
	}
	if delta <= 0 {
		return
	}
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime
	x := omega * delta
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := *current - target
	goal := target
	target = *current - change

	temp := (*vel + omega*change) * delta
	*vel = (*vel - omega*temp) * decay
	output := target + (change+temp)*decay

	// Never overshoot.
	if (goal-*current > 0) == (output > goal) {
		output = goal
		*vel = (output - goal) / delta
	}
	*current = output
}

// dampAngle is damp along the shortest arc to target.
func dampAngle(current, vel *float64, target, smoothTime, delta float64) {
	damp(current, vel, *current+deltaAngle(*current, target), smoothTime, delta)
}

// deltaAngle returns the signed shortest rotation from current to target.
func deltaAngle(current, target float64) float64 {
	d := repeat(target-current, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	return d
}

func repeat(t, length float64) float64 {
	v := t - math.Floor(t/length)*length
	return math.Min(math.Max(v, 0), length)
}
