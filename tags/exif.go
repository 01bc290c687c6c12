package tags

import "sync"

// Identifiers the decoders treat specially.
const (
	ExifIFDPointer uint16 = 0x8769
	GPSIFDPointer  uint16 = 0x8825
	UserComment    uint16 = 0x9286
	XPTitle        uint16 = 0x9C9B
	XPComment      uint16 = 0x9C9C
	XPAuthor       uint16 = 0x9C9D
	XPKeywords     uint16 = 0x9C9E
	XPSubject      uint16 = 0x9C9F
)

// IsXP reports whether id is one of the Windows XP* tags, which hold
// UTF-16LE text in a BYTE array.
func IsXP(id uint16) bool {
	return id >= XPTitle && id <= XPSubject
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the built-in EXIF and GPS tag table. Names follow the
// conventional EXIF spelling used by most readers.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = NewTable(mainTags, gpsTags)
	})
	return defaultTable
}

var mainTags = []TagDef{
	{0x000B, "ProcessingSoftware", "Software used to process the image", GroupMain},
	{0x00FE, "NewSubfileType", "Kind of data in this subfile", GroupMain},
	{0x00FF, "SubfileType", "Kind of data in this subfile (old style)", GroupMain},
	{0x0100, "ImageWidth", "Number of columns of image data", GroupMain},
	{0x0101, "ImageLength", "Number of rows of image data", GroupMain},
	{0x0102, "BitsPerSample", "Bits per component", GroupMain},
	{0x0103, "Compression", "Compression scheme", GroupMain},
	{0x0106, "PhotometricInterpretation", "Pixel composition", GroupMain},
	{0x010D, "DocumentName", "Name of the scanned document", GroupMain},
	{0x010E, "ImageDescription", "Image title", GroupMain},
	{0x010F, "Make", "Camera manufacturer", GroupMain},
	{0x0110, "Model", "Camera model", GroupMain},
	{0x0111, "StripOffsets", "Image data location", GroupMain},
	{0x0112, "Orientation", "Orientation of image", GroupMain},
	{0x0115, "SamplesPerPixel", "Number of components", GroupMain},
	{0x0116, "RowsPerStrip", "Number of rows per strip", GroupMain},
	{0x0117, "StripByteCounts", "Bytes per compressed strip", GroupMain},
	{0x011A, "XResolution", "Image resolution in width direction", GroupMain},
	{0x011B, "YResolution", "Image resolution in height direction", GroupMain},
	{0x011C, "PlanarConfiguration", "Image data arrangement", GroupMain},
	{0x0128, "ResolutionUnit", "Unit of X and Y resolution", GroupMain},
	{0x012D, "TransferFunction", "Transfer function", GroupMain},
	{0x0131, "Software", "Software used", GroupMain},
	{0x0132, "DateTime", "File change date and time", GroupMain},
	{0x013B, "Artist", "Person who created the image", GroupMain},
	{0x013C, "HostComputer", "Computer used to create the image", GroupMain},
	{0x013E, "WhitePoint", "White point chromaticity", GroupMain},
	{0x013F, "PrimaryChromaticities", "Chromaticities of primaries", GroupMain},
	{0x0201, "JpegIFOffset", "Offset to JPEG SOI", GroupMain},
	{0x0202, "JpegIFByteCount", "Bytes of JPEG data", GroupMain},
	{0x0211, "YCbCrCoefficients", "Color space transformation matrix coefficients", GroupMain},
	{0x0212, "YCbCrSubSampling", "Subsampling ratio of Y to C", GroupMain},
	{0x0213, "YCbCrPositioning", "Y and C positioning", GroupMain},
	{0x0214, "ReferenceBlackWhite", "Pair of black and white reference values", GroupMain},
	{0x4746, "Rating", "Star rating", GroupMain},
	{0x4749, "RatingPercent", "Rating as a percentage", GroupMain},
	{0x8298, "Copyright", "Copyright holder", GroupMain},
	{0x829A, "ExposureTime", "Exposure time", GroupMain},
	{0x829D, "FNumber", "F number", GroupMain},
	{0x8769, "ExifOffset", "Exif IFD pointer", GroupMain},
	{0x8822, "ExposureProgram", "Exposure program", GroupMain},
	{0x8824, "SpectralSensitivity", "Spectral sensitivity", GroupMain},
	{0x8825, "GPSInfo", "GPS information", GroupMain},
	{0x8827, "ISOSpeedRatings", "ISO speed rating", GroupMain},
	{0x8828, "OECF", "Optoelectric conversion factor", GroupMain},
	{0x8830, "SensitivityType", "Sensitivity type", GroupMain},
	{0x9000, "ExifVersion", "Exif version", GroupMain},
	{0x9003, "DateTimeOriginal", "Date and time of original data generation", GroupMain},
	{0x9004, "DateTimeDigitized", "Date and time of digital data generation", GroupMain},
	{0x9010, "OffsetTime", "Offset from UTC of DateTime", GroupMain},
	{0x9011, "OffsetTimeOriginal", "Offset from UTC of DateTimeOriginal", GroupMain},
	{0x9012, "OffsetTimeDigitized", "Offset from UTC of DateTimeDigitized", GroupMain},
	{0x9101, "ComponentsConfiguration", "Meaning of each component", GroupMain},
	{0x9102, "CompressedBitsPerPixel", "Image compression mode", GroupMain},
	{0x9201, "ShutterSpeedValue", "Shutter speed", GroupMain},
	{0x9202, "ApertureValue", "Aperture", GroupMain},
	{0x9203, "BrightnessValue", "Brightness", GroupMain},
	{0x9204, "ExposureBiasValue", "Exposure bias", GroupMain},
	{0x9205, "MaxApertureValue", "Maximum lens aperture", GroupMain},
	{0x9206, "SubjectDistance", "Subject distance", GroupMain},
	{0x9207, "MeteringMode", "Metering mode", GroupMain},
	{0x9208, "LightSource", "Light source", GroupMain},
	{0x9209, "Flash", "Flash", GroupMain},
	{0x920A, "FocalLength", "Lens focal length", GroupMain},
	{0x9214, "SubjectArea", "Subject area", GroupMain},
	{0x927C, "MakerNote", "Manufacturer notes", GroupMain},
	{0x9286, "UserComment", "User comments", GroupMain},
	{0x9290, "SubsecTime", "DateTime subseconds", GroupMain},
	{0x9291, "SubsecTimeOriginal", "DateTimeOriginal subseconds", GroupMain},
	{0x9292, "SubsecTimeDigitized", "DateTimeDigitized subseconds", GroupMain},
	{0x9C9B, "XPTitle", "Windows title", GroupMain},
	{0x9C9C, "XPComment", "Windows comment", GroupMain},
	{0x9C9D, "XPAuthor", "Windows author", GroupMain},
	{0x9C9E, "XPKeywords", "Windows keywords", GroupMain},
	{0x9C9F, "XPSubject", "Windows subject", GroupMain},
	{0xA000, "FlashPixVersion", "Supported Flashpix version", GroupMain},
	{0xA001, "ColorSpace", "Color space information", GroupMain},
	{0xA002, "ExifImageWidth", "Valid image width", GroupMain},
	{0xA003, "ExifImageHeight", "Valid image height", GroupMain},
	{0xA004, "RelatedSoundFile", "Related audio file", GroupMain},
	{0xA005, "ExifInteroperabilityOffset", "Interoperability IFD pointer", GroupMain},
	{0xA20E, "FocalPlaneXResolution", "Focal plane X resolution", GroupMain},
	{0xA20F, "FocalPlaneYResolution", "Focal plane Y resolution", GroupMain},
	{0xA210, "FocalPlaneResolutionUnit", "Focal plane resolution unit", GroupMain},
	{0xA215, "ExposureIndex", "Exposure index", GroupMain},
	{0xA217, "SensingMethod", "Sensing method", GroupMain},
	{0xA300, "FileSource", "File source", GroupMain},
	{0xA301, "SceneType", "Scene type", GroupMain},
	{0xA302, "CFAPattern", "CFA pattern", GroupMain},
	{0xA401, "CustomRendered", "Custom image processing", GroupMain},
	{0xA402, "ExposureMode", "Exposure mode", GroupMain},
	{0xA403, "WhiteBalance", "White balance", GroupMain},
	{0xA404, "DigitalZoomRatio", "Digital zoom ratio", GroupMain},
	{0xA405, "FocalLengthIn35mmFilm", "Focal length in 35 mm film", GroupMain},
	{0xA406, "SceneCaptureType", "Scene capture type", GroupMain},
	{0xA407, "GainControl", "Gain control", GroupMain},
	{0xA408, "Contrast", "Contrast", GroupMain},
	{0xA409, "Saturation", "Saturation", GroupMain},
	{0xA40A, "Sharpness", "Sharpness", GroupMain},
	{0xA40C, "SubjectDistanceRange", "Subject distance range", GroupMain},
	{0xA420, "ImageUniqueID", "Unique image ID", GroupMain},
	{0xA430, "CameraOwnerName", "Camera owner name", GroupMain},
	{0xA431, "BodySerialNumber", "Camera body serial number", GroupMain},
	{0xA432, "LensSpecification", "Lens specification", GroupMain},
	{0xA433, "LensMake", "Lens make", GroupMain},
	{0xA434, "LensModel", "Lens model", GroupMain},
	{0xA435, "LensSerialNumber", "Lens serial number", GroupMain},
	{0xA500, "Gamma", "Gamma", GroupMain},
}

var gpsTags = []TagDef{
	{0, "GPSVersionID", "GPS tag version", GroupGPS},
	{1, "GPSLatitudeRef", "North or south latitude", GroupGPS},
	{2, "GPSLatitude", "Latitude", GroupGPS},
	{3, "GPSLongitudeRef", "East or west longitude", GroupGPS},
	{4, "GPSLongitude", "Longitude", GroupGPS},
	{5, "GPSAltitudeRef", "Altitude reference", GroupGPS},
	{6, "GPSAltitude", "Altitude", GroupGPS},
	{7, "GPSTimeStamp", "GPS time (atomic clock)", GroupGPS},
	{8, "GPSSatellites", "GPS satellites used for measurement", GroupGPS},
	{9, "GPSStatus", "GPS receiver status", GroupGPS},
	{10, "GPSMeasureMode", "GPS measurement mode", GroupGPS},
	{11, "GPSDOP", "Measurement precision", GroupGPS},
	{12, "GPSSpeedRef", "Speed unit", GroupGPS},
	{13, "GPSSpeed", "Speed of GPS receiver", GroupGPS},
	{14, "GPSTrackRef", "Reference for direction of movement", GroupGPS},
	{15, "GPSTrack", "Direction of movement", GroupGPS},
	{16, "GPSImgDirectionRef", "Reference for direction of image", GroupGPS},
	{17, "GPSImgDirection", "Direction of image", GroupGPS},
	{18, "GPSMapDatum", "Geodetic survey data used", GroupGPS},
	{19, "GPSDestLatitudeRef", "Reference for latitude of destination", GroupGPS},
	{20, "GPSDestLatitude", "Latitude of destination", GroupGPS},
	{21, "GPSDestLongitudeRef", "Reference for longitude of destination", GroupGPS},
	{22, "GPSDestLongitude", "Longitude of destination", GroupGPS},
	{23, "GPSDestBearingRef", "Reference for bearing of destination", GroupGPS},
	{24, "GPSDestBearing", "Bearing of destination", GroupGPS},
	{25, "GPSDestDistanceRef", "Reference for distance to destination", GroupGPS},
	{26, "GPSDestDistance", "Distance to destination", GroupGPS},
	{27, "GPSProcessingMethod", "Name of GPS processing method", GroupGPS},
	{28, "GPSAreaInformation", "Name of GPS area", GroupGPS},
	{29, "GPSDateStamp", "GPS date", GroupGPS},
	{30, "GPSDifferential", "GPS differential correction", GroupGPS},
	{31, "GPSHPositioningError", "Horizontal positioning error", GroupGPS},
}
