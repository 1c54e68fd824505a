package math

// RGB converts a 0xRRGGBB color to linear components in [0, 1].
func RGB(hex uint32) Vec3 {
	return Vec3{
		float32(hex>>16&0xFF) / 255,
		float32(hex>>8&0xFF) / 255,
		float32(hex&0xFF) / 255,
	}
}
