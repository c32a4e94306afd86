package local
import (
	"fmt"
	"errors"
	"io"
	"net/http"
	"encoding/json"

	"imgsteg/cryptography"
	"imgsteg/stegano/decimal"
	"imgsteg/stegano/img"
	stegutil "imgsteg/stegano/util"
)

func writeJsonResponse( w http.ResponseWriter, status int, v any ) {
	resp, err := json.Marshal( v )
	if err != nil {
		http.Error( w, "Internal Server Error", http.StatusInternalServerError )
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader( status )
	w.Write( resp )
}

func statusFor( err error ) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is( err, decimal.ErrCapacityExceeded ),
		errors.Is( err, img.ErrImageTooLarge ),
		errors.As( err, &tooLarge ):
		return http.StatusRequestEntityTooLarge
	case errors.Is( err, decimal.ErrMalformedLength ), errors.Is( err, decimal.ErrGridTooSmall ):
		return http.StatusUnprocessableEntity
	case errors.Is( err, img.ErrFileTypeNotAllowed ),
		errors.Is( err, img.ErrUnsupportedFormat ),
		errors.Is( err, img.ErrEmptyImage ),
		errors.Is( err, img.ErrCorruptImage ),
		errors.Is( err, decimal.ErrEmptyMessage ),
		errors.Is( err, decimal.ErrUnsupportedScalar ),
		errors.Is( err, decimal.ErrLengthOverflow ),
		errors.Is( err, http.ErrMissingFile ),
		errors.Is( err, http.ErrNotMultipart ):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func(a *Api) sendError( w http.ResponseWriter, route string, err error ) {
	status := statusFor( err )
	if status == http.StatusInternalServerError {
		a.logger.LogError( fmt.Errorf("[%s] %w", route, err) )
	} else {
		a.logger.LogWarning( fmt.Sprintf("[%s] %s", route, err.Error()) )
	}
	writeJsonResponse( w, status, Response{
		Ok: false,
		Message: err.Error(),
	})
}

// uploaded image with its client-side file name
func(a *Api) readUpload( w http.ResponseWriter, r *http.Request ) (string, []byte, error) {
	if r.ContentLength > a.sc.MaxUploadSize {
		return "", nil, &http.MaxBytesError{ Limit: a.sc.MaxUploadSize }
	}
	r.Body = http.MaxBytesReader( w, r.Body, a.sc.MaxUploadSize )
	if err := r.ParseMultipartForm( a.sc.MaxUploadSize ); err != nil {
		return "", nil, err
	}
	file, header, err := r.FormFile( ImageField )
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	data, err := io.ReadAll( file )
	if err != nil {
		return "", nil, err
	}
	return header.Filename, data, nil
}

func(a *Api) handleEncode( w http.ResponseWriter, r *http.Request ) {
	filename, data, err := a.readUpload( w, r )
	if err != nil {
		a.sendError( w, "encode", err )
		return
	}
	message := r.FormValue( MessageField )
	encoded, err := a.loader.Hide( filename, data, message )
	if err != nil {
		a.sendError( w, "encode", err )
		return
	}

	a.logger.LogInfo( fmt.Sprintf("[encode] %d characters (%d graphemes) into %s, %d bytes out, sha512 %.16s",
		len( a.loader.Codec().Units( message ) ), stegutil.CountGraphemes( message ),
		filename, len(encoded), cryptography.Hash( encoded )) )

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.stc.OutputFilename))
	w.Write( encoded )
}

func(a *Api) handleDecode( w http.ResponseWriter, r *http.Request ) {
	filename, data, err := a.readUpload( w, r )
	if err != nil {
		a.sendError( w, "decode", err )
		return
	}
	message, err := a.loader.Reveal( filename, data )
	if err != nil {
		a.sendError( w, "decode", err )
		return
	}
	a.logger.LogInfo( fmt.Sprintf("[decode] %d characters from %s", len( []rune(message) ), filename) )

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write( []byte(message) )
}

func(a *Api) handleCapacity( w http.ResponseWriter, r *http.Request ) {
	filename, data, err := a.readUpload( w, r )
	if err != nil {
		a.sendError( w, "capacity", err )
		return
	}
	info, err := a.loader.Capacity( filename, data )
	if err != nil {
		a.sendError( w, "capacity", err )
		return
	}
	writeJsonResponse( w, http.StatusOK, info )
}
