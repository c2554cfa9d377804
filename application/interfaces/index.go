package interfaces

// ApplicationContext carries a parsed request body and request identity into
// controllers and usecases without binding them to gin.
type ApplicationContext[T interface{}] struct {
	Ctx      interface{}
	Body     *T
	UserID   string
	Elevated bool
	Header   map[string][]string
}

func (ac *ApplicationContext[T]) GetHeader(key string) string {
	if ac.Header == nil {
		return ""
	}
	values := ac.Header[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
