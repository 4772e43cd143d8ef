package renderer

// FrameStats keeps a running exponential moving average of frame time for
// reporting. The blend weight starts at 1 so the first frame seeds the
// average, then decays toward a steady smoothing factor.
type FrameStats struct {
	AvgFrameMs float64
	alpha      float64
}

// NewFrameStats creates frame statistics ready for the first update
func NewFrameStats() FrameStats {
	return FrameStats{alpha: 1}
}

// Update folds one frame time (in milliseconds) into the moving average
func (fs *FrameStats) Update(frameMs float64) {
	fs.AvgFrameMs = (1-fs.alpha)*fs.AvgFrameMs + fs.alpha*frameMs
	if fs.alpha > 0.05 {
		fs.alpha *= 0.75
	}
}

// FPS returns the smoothed frames per second
func (fs *FrameStats) FPS() float64 {
	if fs.AvgFrameMs == 0 {
		return 0
	}
	return 1000 / fs.AvgFrameMs
}

// RaysPerSecond returns the smoothed primary ray throughput
func (fs *FrameStats) RaysPerSecond(raysPerFrame int) float64 {
	if fs.AvgFrameMs == 0 {
		return 0
	}
	return float64(raysPerFrame) / fs.AvgFrameMs * 1000
}
