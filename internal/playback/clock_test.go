package playback_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendulum/internal/playback"
)

var _ = Describe("Clock", func() {
	var (
		src   *playback.FakeTime
		clock *playback.Clock
	)

	BeforeEach(func() {
		src = playback.NewFakeTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		clock = playback.New(src, playback.Paused)
	})

	Context("when paused", func() {
		It("reports the paused state", func() {
			Expect(clock.IsPlaying()).To(BeFalse())
			Expect(clock.State()).To(Equal(playback.Paused))
			Expect(clock.State().String()).To(Equal("paused"))
		})

		It("never yields a step delta", func() {
			for i := 0; i < 5; i++ {
				src.Advance(3 * time.Second)
				Expect(clock.ConsumeStepDelta()).To(BeZero())
			}
		})

		It("does not carry paused time into the first playing frame", func() {
			src.Advance(10 * time.Second)
			clock.ConsumeStepDelta()
			src.Advance(10 * time.Second)

			clock.Toggle()
			src.Advance(20 * time.Millisecond)

			Expect(clock.ConsumeStepDelta()).To(BeNumerically("~", 0.02, 1e-9))
		})

		It("shows zero elapsed time before ever playing", func() {
			src.Advance(time.Minute)
			Expect(clock.ElapsedDisplaySeconds()).To(BeZero())
		})
	})

	Context("when playing", func() {
		BeforeEach(func() {
			clock.Toggle()
		})

		It("returns the wall time since the previous frame", func() {
			src.Advance(1500 * time.Millisecond)
			Expect(clock.ConsumeStepDelta()).To(BeNumerically("~", 1.5, 1e-9))

			src.Advance(16 * time.Millisecond)
			Expect(clock.ConsumeStepDelta()).To(BeNumerically("~", 0.016, 1e-9))
		})

		It("returns zero for back to back frames", func() {
			src.Advance(time.Second)
			clock.ConsumeStepDelta()
			Expect(clock.ConsumeStepDelta()).To(BeZero())
		})

		It("does not clamp large deltas", func() {
			src.Advance(time.Hour)
			Expect(clock.ConsumeStepDelta()).To(BeNumerically("~", 3600, 1e-6))
		})

		It("accumulates elapsed time without resetting it", func() {
			src.Advance(2 * time.Second)
			Expect(clock.ElapsedDisplaySeconds()).To(BeNumerically("~", 2, 1e-9))
			src.Advance(time.Second)
			clock.ConsumeStepDelta()
			Expect(clock.ElapsedDisplaySeconds()).To(BeNumerically("~", 3, 1e-9))
		})
	})

	Context("after pausing", func() {
		BeforeEach(func() {
			clock.Toggle()
			src.Advance(4 * time.Second)
			clock.ForcePause()
		})

		It("freezes the elapsed time captured at the pause", func() {
			Expect(clock.ElapsedDisplaySeconds()).To(BeNumerically("~", 4, 1e-9))
			src.Advance(time.Minute)
			Expect(clock.ElapsedDisplaySeconds()).To(BeNumerically("~", 4, 1e-9))
		})

		It("restarts elapsed time from zero on resume", func() {
			src.Advance(time.Minute)
			clock.Toggle()
			src.Advance(500 * time.Millisecond)
			Expect(clock.ElapsedDisplaySeconds()).To(BeNumerically("~", 0.5, 1e-9))
		})

		It("ignores repeated forced pauses", func() {
			src.Advance(time.Second)
			clock.ForcePause()
			Expect(clock.IsPlaying()).To(BeFalse())
			Expect(clock.ElapsedDisplaySeconds()).To(BeNumerically("~", 4, 1e-9))
		})
	})

	Context("when constructed playing", func() {
		It("measures from construction", func() {
			c := playback.New(src, playback.Playing)
			src.Advance(250 * time.Millisecond)
			Expect(c.IsPlaying()).To(BeTrue())
			Expect(c.ConsumeStepDelta()).To(BeNumerically("~", 0.25, 1e-9))
		})
	})

	It("falls back to real time for a nil source", func() {
		c := playback.New(nil, playback.Playing)
		Expect(c.ConsumeStepDelta()).To(BeNumerically(">=", 0))
	})
})
