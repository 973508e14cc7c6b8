package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every HTTP surface mounted by the application.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
