package ecolor

import "github.com/abworrall/opendrt/pkg/emath"

var(
	// The pipeline works in P3-D65 after the input gamut has been taken to XYZ.
	XYZToP3D65 = emath.Mat3{
		 2.49349691194,  -0.931383617919, -0.402710784451,
		-0.829488694668,  1.76266097069,   0.0236246771724,
		 0.0358458302915,-0.0761723891287, 0.956884503364,
	}

	P3D65ToRec709 = emath.Mat3{
		 1.224940181,   -0.2249402404,  0,
		-0.04205697775,  1.042057037,  -1.4901e-08,
		-0.01963755488, -0.07863604277, 1.098273635,
	}

	P3D65ToRec2020 = emath.Mat3{
		 0.7538330344,  0.1985973691, 0.04756959659,
		 0.04574384897, 0.9417772198, 0.01247893122,
		-0.001210340355, 0.0176017173, 0.9836086231,
	}
)

// Input gamut RGB -> XYZ (D65), indexed by Gamut.
var builtinInputMatrices = [NumGamuts]emath.Mat3{
	GamutXYZ: emath.Identity(),
	GamutAP0: {
		0.93863094875,  -0.00574192055,  0.017566898852,
		0.338093594922,  0.727213902811,-0.065307497733,
		0.000723121511,  0.000818441849, 1.0875161874,
	},
	GamutAP1: {
		 0.652418717672, 0.127179925538, 0.170857283842,
		 0.268064059194, 0.672464478993, 0.059471461813,
		-0.00546992851,  0.005182799977, 1.08934487929,
	},
	GamutP3D65: {
		0.486571133137, 0.265667706728, 0.198217317462,
		0.228974640369, 0.691738605499, 0.079286918044,
		0,              0.045113388449, 1.043944478035,
	},
	GamutRec2020: {
		0.636958122253, 0.144616916776, 0.168880969286,
		0.262700229883, 0.677998125553, 0.059301715344,
		0,              0.028072696179, 1.060985088348,
	},
	GamutRec709: {
		0.412390917540, 0.357584357262, 0.180480793118,
		0.212639078498, 0.715168714523, 0.072192311287,
		0.019330825657, 0.119194783270, 0.950532138348,
	},
	GamutAWG3: {
		0.638007619284,  0.214703856337,  0.097744451431,
		0.291953779,     0.823841041511, -0.11579482051,
		0.002798279032, -0.067034235689,  1.15329370742,
	},
	GamutAWG4: {
		0.704858320407, 0.12976029517,   0.115837311474,
		0.254524176404, 0.781477732712, -0.036001909116,
		0,              0,               1.08905775076,
	},
	GamutRWG: {
		 0.735275208950,  0.068609409034,  0.146571278572,
		 0.286694079638,  0.842979073524, -0.129673242569,
		-0.079680845141, -0.347343206406,  1.516081929207,
	},
	GamutSGamut3: {
		 0.706482713192, 0.128801049791,  0.115172164069,
		 0.270979670813, 0.786606411221, -0.057586082034,
		-0.009677845386, 0.004600037493,  1.09413555865,
	},
	GamutSGamut3Cine: {
		 0.599083920758,  0.248925516115,  0.102446490178,
		 0.215075820116,  0.885068501744, -0.100144321859,
		-0.032065849545, -0.027658390679,  1.14878199098,
	},
	GamutVGamut: {
		 0.679644469878,  0.15221141244,  0.118600044733,
		 0.26068555009,   0.77489446333, -0.03558001342,
		-0.009310198218, -0.004612467044, 1.10298041602,
	},
	GamutBMDWG: {
		 0.606538414955,  0.220412746072,  0.123504832387,
		 0.267992943525,  0.832748472691, -0.100741356611,
		-0.029442556202, -0.086612440646,  1.205112814903,
	},
	GamutEGamut: {
		 0.705396831036,  0.164041340351,  0.081017754972,
		 0.280130714178,  0.820206701756, -0.100337378681,
		-0.103781513870, -0.072907261550,  1.265746593475,
	},
	GamutEGamut2: {
		 0.736477700184,  0.130739651087,  0.083238575781,
		 0.275069984406,  0.828017790216, -0.103087774621,
		-0.124225154248, -0.087159767391,  1.3004426724,
	},
	GamutDWG: {
		 0.700622320175,  0.148774802685,  0.101058728993,
		 0.274118483067,  0.873631775379, -0.147750422359,
		-0.098962903023, -0.137895315886,  1.325916051865,
	},
}

// P3-D65 -> display gamut, indexed by DisplayGamut. Rec.2020 output is
// limited to P3 first, so it starts from identity here; the P3->2020
// step runs after the clamp.
var builtinOutputMatrices = [NumDisplayGamuts]emath.Mat3{
	DisplayRec709:  P3D65ToRec709,
	DisplayP3D65:   emath.Identity(),
	DisplayRec2020: P3D65ToRec2020,
}

// Creative whitepoint matrices, P3-D65 in. The Rec.709 set bundles in
// the P3->709 conversion; P3 and Rec.2020 share the P3 set.
var(
	cwpP3 = [4]emath.Mat3{
		WhitepointD65: emath.Identity(),
		WhitepointD60: {
			 0.979832881,    0.01836378979,  0.001803284786,
			-0.000805359793, 0.9618000331,   1.8876121e-05,
			-0.000338382322,-0.003671835795, 0.894139105,
		},
		WhitepointD55: {
			 0.9559790976,   0.0403850003,   0.003639287409,
			-0.001771929896, 0.9163058305,   3.3300759e-05,
			-0.000674760809,-0.0072466358,   0.7831189153,
		},
		WhitepointD50: {
			 0.9287127388,   0.06578032793,  0.005506708345,
			-0.002887159176, 0.8640709228,   4.3593718e-05,
			-0.001009551548,-0.01073503317,  0.6672692039,
		},
	}

	cwpRec709 = [4]emath.Mat3{
		WhitepointD65: P3D65ToRec709,
		WhitepointD60: {
			 1.189986856,  -0.192168414,   0.002185496045,
			-0.04168263635, 0.9927757018, -5.5660878e-05,
			-0.01937995127,-0.07933006919, 0.9734397041,
		},
		WhitepointD55: {
			 1.149327514,  -0.1536910745,  0.004366526746,
			-0.0412590771,  0.9351717477, -0.000116126221,
			-0.01900949528,-0.07928282823, 0.8437884317,
		},
		WhitepointD50: {
			 1.103807322,  -0.1103425121,  0.006531676079,
			-0.04079386701, 0.8704694227, -0.000180522628,
			-0.01854055914,-0.07857582481, 0.7105498861,
		},
	}
)
