package reports

import (
	"encoding/base64"
	"io"
	"strings"
)

type photoKind int

const (
	photoNone photoKind = iota
	photoLocal
	photoRemote
)

// Photo es un valor etiquetado:
// - LocalPhoto: preview transitorio (data URL) que solo vive en la sesión.
// - RemotePhoto: URL durable del object store.
// Record no acepta Photo, así un preview nunca llega al store.
type Photo struct {
	kind photoKind
	ref  string
}

func LocalPhoto(dataURL string) Photo {
	if strings.TrimSpace(dataURL) == "" {
		return Photo{}
	}
	return Photo{kind: photoLocal, ref: dataURL}
}

func RemotePhoto(url string) Photo {
	if strings.TrimSpace(url) == "" {
		return Photo{}
	}
	return Photo{kind: photoRemote, ref: url}
}

func (p Photo) IsZero() bool   { return p.kind == photoNone }
func (p Photo) IsLocal() bool  { return p.kind == photoLocal }
func (p Photo) IsRemote() bool { return p.kind == photoRemote }

// Src es lo que va en el atributo src de la imagen.
func (p Photo) Src() string { return p.ref }

// PreviewDataURL arma el data URL que usa el formulario para el preview.
func PreviewDataURL(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Upload es el binario de la foto que se entrega al pipeline.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
