package local

type Response struct {
	Ok		bool		`json:"ok"`		// if no error occured
	Message		string		`json:"message"`	// error message, if any
}

const (
	ImageField = "image"
	MessageField = "message"
)
