package fixmath

// sin(i * 2π/256) * 32767, one full turn in 256 brads.
var sinTable = [256]int16{
	0, 804, 1607, 2410, 3211, 4011, 4807, 5601,
	6392, 7179, 7961, 8739, 9511, 10278, 11038, 11792,
	12539, 13278, 14009, 14732, 15446, 16150, 16845, 17530,
	18204, 18867, 19519, 20159, 20787, 21402, 22004, 22594,
	23169, 23731, 24278, 24811, 25329, 25831, 26318, 26789,
	27244, 27683, 28105, 28510, 28897, 29268, 29621, 29955,
	30272, 30571, 30851, 31113, 31356, 31580, 31785, 31970,
	32137, 32284, 32412, 32520, 32609, 32678, 32727, 32757,
	32767, 32757, 32727, 32678, 32609, 32520, 32412, 32284,
	32137, 31970, 31785, 31580, 31356, 31113, 30851, 30571,
	30272, 29955, 29621, 29268, 28897, 28510, 28105, 27683,
	27244, 26789, 26318, 25831, 25329, 24811, 24278, 23731,
	23169, 22594, 22004, 21402, 20787, 20159, 19519, 18867,
	18204, 17530, 16845, 16150, 15446, 14732, 14009, 13278,
	12539, 11792, 11038, 10278, 9511, 8739, 7961, 7179,
	6392, 5601, 4807, 4011, 3211, 2410, 1607, 804,
	0, -804, -1607, -2410, -3211, -4011, -4807, -5601,
	-6392, -7179, -7961, -8739, -9511, -10278, -11038, -11792,
	-12539, -13278, -14009, -14732, -15446, -16150, -16845, -17530,
	-18204, -18867, -19519, -20159, -20787, -21402, -22004, -22594,
	-23169, -23731, -24278, -24811, -25329, -25831, -26318, -26789,
	-27244, -27683, -28105, -28510, -28897, -29268, -29621, -29955,
	-30272, -30571, -30851, -31113, -31356, -31580, -31785, -31970,
	-32137, -32284, -32412, -32520, -32609, -32678, -32727, -32757,
	-32767, -32757, -32727, -32678, -32609, -32520, -32412, -32284,
	-32137, -31970, -31785, -31580, -31356, -31113, -30851, -30571,
	-30272, -29955, -29621, -29268, -28897, -28510, -28105, -27683,
	-27244, -26789, -26318, -25831, -25329, -24811, -24278, -23731,
	-23169, -22594, -22004, -21402, -20787, -20159, -19519, -18867,
	-18204, -17530, -16845, -16150, -15446, -14732, -14009, -13278,
	-12539, -11792, -11038, -10278, -9511, -8739, -7961, -7179,
	-6392, -5601, -4807, -4011, -3211, -2410, -1607, -804,
}
