package httpapi

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"motoweather/internal/ride"
)

// Runner is the single entry operation of the pipeline.
type Runner interface {
	Run(ctx context.Context) error
}

// Deps wires the trigger surface to the pipeline. Now is injectable so the
// weekday gate can be tested; main passes time.Now.
type Deps struct {
	Runner   Runner
	Location *time.Location
	Now      func() time.Time
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Motorbike Weather Assistant is running!")
	})

	// Manual trigger, gated to weekdays in the configured timezone.
	app.Get("/run", func(c *fiber.Ctx) error {
		local := now().In(deps.Location)
		if !ride.IsCommuteDay(local) {
			return c.SendString("Weekend: no email sent.")
		}

		if err := deps.Runner.Run(c.UserContext()); err != nil {
			// The pipeline has already sent its error notification;
			// the trigger just reports what happened.
			log.Printf("ERROR: run aborted: %v", err)
			return c.SendString("Weather check aborted; error notification sent.")
		}
		return c.SendString("Weather check executed and email sent.")
	})
}
