// Package health serves liveness and readiness probes.
//
// [ReadinessHandler] runs the Healthcheck closures of the session stores and
// the job manager concurrently and answers 503 when one fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "postgres": db.Healthcheck(pool),
//	    "redis":    redis.Healthcheck(client),
//	    "jobs":     job.Healthcheck(manager),
//	}))
//
// Responses are plain text unless the client asks for JSON through the
// Accept header or ?format=json.
package health
