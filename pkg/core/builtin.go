package core

func def(id, name string, freq, stereo, depth, shape []string) SoundDefinition {
	return SoundDefinition{
		ID:              id,
		Name:            name,
		FreqBands:       NewAttributeSet(freq...),
		StereoPresences: NewAttributeSet(stereo...),
		Depths:          NewAttributeSet(depth...),
		Shapes:          NewAttributeSet(shape...),
	}
}

var builtinSounds = []SoundDefinition{
	def("ambience", "Ambience",
		[]string{"low-mid", "mid"}, []string{"medium", "wide"}, []string{"back"}, []string{"transient", "sustained"}),
	def("arp", "Arpeggiator",
		[]string{"low-mid", "mid", "high"}, []string{"narrow", "medium"}, []string{"front", "middle"}, []string{"transient"}),
	def("bass", "Bass",
		[]string{"low", "low-mid"}, []string{"narrow", "wide"}, []string{"front"}, []string{"transient", "sustained"}),
	def("bell", "Bell",
		[]string{"mid", "high"}, []string{"narrow", "medium"}, []string{"front", "middle"}, []string{"transient"}),
	def("brass", "Brass",
		[]string{"low-mid", "mid", "high"}, []string{"narrow", "medium"}, []string{"front", "middle"}, []string{"transient", "sustained"}),
	def("flute", "Flute",
		[]string{"mid", "high"}, []string{"narrow", "medium"}, []string{"front", "middle"}, []string{"transient", "sustained"}),
	def("guitar", "Guitar",
		[]string{"low-mid", "mid", "high"}, []string{"narrow", "medium"}, []string{"middle", "back"}, []string{"transient"}),
	def("keys", "Keys",
		[]string{"low-mid", "mid", "high"}, []string{"narrow", "medium"}, []string{"front", "middle"}, []string{"transient"}),
	def("lead", "Lead",
		[]string{"mid", "high"}, []string{"narrow", "medium"}, []string{"front", "middle"}, []string{"sustained"}),
	def("organ", "Organ",
		[]string{"low-mid", "mid"}, []string{"narrow", "medium"}, []string{"front", "middle"}, []string{"sustained"}),
	def("pad", "Pad",
		[]string{"low-mid", "mid"}, []string{"medium", "wide"}, []string{"middle", "back"}, []string{"sustained"}),
	def("percussion", "Percussion",
		[]string{"mid", "high"}, []string{"narrow", "medium", "wide"}, []string{"front", "middle"}, []string{"transient"}),
	def("pluck", "Pluck",
		[]string{"mid", "high"}, []string{"narrow", "medium"}, []string{"front", "middle"}, []string{"transient"}),
	def("strings", "Strings",
		[]string{"mid", "high"}, []string{"medium", "wide"}, []string{"middle", "back"}, []string{"sustained"}),
	def("synth", "Synthesizer",
		[]string{"low-mid", "mid", "high"}, []string{"narrow", "medium", "wide"}, []string{"front", "middle"}, []string{"transient", "sustained"}),
}
