package formats

func init() {
	RegisterLocator(FormatTIFF, tiffLocator{})
}

type tiffLocator struct{}

// A TIFF file is its own EXIF block; XMP, when present, is a bare packet.
func (tiffLocator) Locate(data []byte) (*Container, error) {
	return &Container{EXIF: data, XMP: scanXMPPacket(data)}, nil
}
