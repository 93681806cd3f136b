package tools

import (
	"encoding/base64"

	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
	log "github.com/sirupsen/logrus"
)

// QRCodeDataURL renderiza o payload Pix como PNG em data-URL, pronto para um
// <img> no front. Se a renderização falhar devolve o próprio payload — o
// comprador ainda consegue pagar via copia-e-cola.
func QRCodeDataURL(pixCode string) string {
	png, err := renderQRCodePNG(pixCode)
	if err != nil {
		log.WithError(err).Warn("falha ao renderizar QR Code, usando payload cru")
		return pixCode
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

func renderQRCodePNG(pixCode string) ([]byte, error) {
	png, err := qrcode.Encode(pixCode, qrcode.Medium, 256)
	if err != nil {
		return nil, errors.Wrap(err, "encode qrcode")
	}
	return png, nil
}
