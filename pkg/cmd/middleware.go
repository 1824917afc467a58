package cmd

// Middleware wraps a command (recovery, auth, logging).
type Middleware func(Command) Command

// Apply applies middlewares in order; the last one in the list ends up outermost.
func Apply(c Command, mws ...Middleware) Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}
