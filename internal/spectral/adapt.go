package spectral

var bradfordInverse = mustInverse(Bradford)

func mustInverse(m Mat3) Mat3 {
	inv, err := m.Inverse()
	if err != nil {
		panic(err)
	}
	return inv
}

// AdaptationMatrix builds the Bradford transform taking colours seen under
// the src white to the dst white.
func AdaptationMatrix(src, dst XYZ) Mat3 {
	s := Bradford.MulVec(src.Vec())
	d := Bradford.MulVec(dst.Vec())
	gain := Diag(Vec3{d[0] / s[0], d[1] / s[1], d[2] / s[2]})
	return bradfordInverse.Mul(gain.Mul(Bradford))
}

// Adapt converts xyz measured under from into the equivalent colour under to,
// using the white points of both illuminants for the same observer.
func Adapt(xyz XYZ, from, to Illuminant, obs Observer) (XYZ, error) {
	src, err := WhitePoint(from, obs)
	if err != nil {
		return XYZ{}, err
	}
	dst, err := WhitePoint(to, obs)
	if err != nil {
		return XYZ{}, err
	}
	if from == to {
		return xyz, nil
	}
	return XYZFromVec(AdaptationMatrix(src, dst).MulVec(xyz.Vec())), nil
}

// ToD65 adapts xyz to D65 when it was measured under another illuminant.
func ToD65(xyz XYZ, ill Illuminant, obs Observer) (XYZ, error) {
	return Adapt(xyz, ill, D65, obs)
}
