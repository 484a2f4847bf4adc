package texmath

// symbolCommands maps argument-less commands to Typst symbols or operators.
var symbolCommands = map[string]string{
	// Greek lowercase
	"alpha": "alpha", "beta": "beta", "gamma": "gamma", "delta": "delta",
	"epsilon": "epsilon.alt", "varepsilon": "epsilon", "zeta": "zeta",
	"eta": "eta", "theta": "theta", "vartheta": "theta.alt", "iota": "iota",
	"kappa": "kappa", "lambda": "lambda", "mu": "mu", "nu": "nu", "xi": "xi",
	"omicron": "omicron", "pi": "pi", "varpi": "pi.alt", "rho": "rho",
	"varrho": "rho.alt", "sigma": "sigma", "varsigma": "sigma.alt",
	"tau": "tau", "upsilon": "upsilon", "phi": "phi.alt", "varphi": "phi",
	"chi": "chi", "psi": "psi", "omega": "omega",

	// Greek uppercase
	"Gamma": "Gamma", "Delta": "Delta", "Theta": "Theta", "Lambda": "Lambda",
	"Xi": "Xi", "Pi": "Pi", "Sigma": "Sigma", "Upsilon": "Upsilon",
	"Phi": "Phi", "Psi": "Psi", "Omega": "Omega",

	// Big operators
	"int": "integral", "iint": "integral.double", "iiint": "integral.triple",
	"oint": "integral.cont", "sum": "sum", "prod": "product",
	"coprod": "product.co", "bigcup": "union.big", "bigcap": "sect.big",
	"bigoplus": "plus.circle.big", "bigotimes": "times.circle.big",

	// Binary operators
	"cdot": "dot.op", "times": "times", "div": "div", "pm": "plus.minus",
	"mp": "minus.plus", "ast": "ast", "star": "star", "circ": "circle.small",
	"bullet": "bullet", "oplus": "plus.circle", "otimes": "times.circle",
	"cup": "union", "cap": "sect", "setminus": "without", "wedge": "and",
	"land": "and", "vee": "or", "lor": "or",

	// Relations
	"leq": "<=", "le": "<=", "geq": ">=", "ge": ">=", "neq": "!=", "ne": "!=",
	"approx": "approx", "equiv": "equiv", "sim": "tilde.op",
	"simeq": "tilde.eq", "cong": "tilde.equiv", "propto": "prop",
	"ll": "<<", "gg": ">>", "in": "in", "notin": "in.not", "ni": "in.rev",
	"subset": "subset", "subseteq": "subset.eq", "supset": "supset",
	"supseteq": "supset.eq", "perp": "perp", "parallel": "parallel",
	"mid": "divides", "models": "models", "vdash": "tack.r",

	// Arrows
	"to": "->", "rightarrow": "->", "leftarrow": "<-", "gets": "<-",
	"Rightarrow": "=>", "Leftarrow": "arrow.l.double",
	"leftrightarrow": "<->", "Leftrightarrow": "<=>", "iff": "<==>",
	"implies": "==>", "mapsto": "|->", "uparrow": "arrow.t",
	"downarrow": "arrow.b", "longrightarrow": "-->", "longleftarrow": "<--",

	// Dots
	"ldots": "dots.h", "dots": "dots.h", "cdots": "dots.c", "vdots": "dots.v",
	"ddots": "dots.down",

	// Miscellaneous
	"infty": "infinity", "partial": "diff", "nabla": "nabla", "forall": "forall",
	"exists": "exists", "nexists": "exists.not", "emptyset": "nothing",
	"varnothing": "nothing", "neg": "not", "lnot": "not", "prime": "prime",
	"ell": "ell", "hbar": "planck.reduce", "Re": "Re", "Im": "Im",
	"aleph": "aleph", "angle": "angle", "top": "top", "bot": "bot",
	"langle": "angle.l", "rangle": "angle.r", "lceil": "ceil.l",
	"rceil": "ceil.r", "lfloor": "floor.l", "rfloor": "floor.r",
	"lbrace": "\\{", "rbrace": "\\}", "vert": "|", "Vert": "||",
	"therefore": "therefore", "because": "because", "degree": "degree",

	// Spacing
	"quad": "quad", "qquad": "wide", ",": "thin", ":": "med", ">": "med",
	";": "thick", " ": " ",

	// Escaped specials
	"{": "\\{", "}": "\\}", "%": "%", "$": "\\$", "&": "\\&", "_": "\\_",
	"#": "\\#", "|": "||", "\\": "\\",
}

// operatorCommands are upright function names Typst predefines.
var operatorCommands = map[string]bool{
	"sin": true, "cos": true, "tan": true, "cot": true, "sec": true, "csc": true,
	"arcsin": true, "arccos": true, "arctan": true, "sinh": true, "cosh": true,
	"tanh": true, "coth": true, "log": true, "ln": true, "lg": true, "exp": true,
	"lim": true, "liminf": true, "limsup": true, "max": true, "min": true,
	"sup": true, "inf": true, "det": true, "gcd": true, "lcm": true, "deg": true,
	"dim": true, "ker": true, "hom": true, "arg": true, "Pr": true, "mod": true,
}

// ignoredCommands change only spacing or sizing and produce no output.
var ignoredCommands = map[string]bool{
	"!": true, "limits": true, "nolimits": true, "displaystyle": true,
	"textstyle": true, "scriptstyle": true, "big": true, "Big": true,
	"bigg": true, "Bigg": true, "bigl": true, "bigr": true, "Bigl": true,
	"Bigr": true,
}

// fontCommands wrap their single argument in a Typst function.
var fontCommands = map[string]string{
	"mathbf": "bold", "boldsymbol": "bold", "bm": "bold", "mathit": "italic",
	"mathrm": "upright", "mathcal": "cal", "mathfrak": "frak",
	"mathsf": "sans", "mathtt": "mono", "mathbb": "bb",
}

// accentCommands wrap their single argument in an accent function.
var accentCommands = map[string]string{
	"hat": "hat", "widehat": "hat", "bar": "macron", "overline": "overline",
	"underline": "underline", "vec": "arrow", "overrightarrow": "arrow",
	"tilde": "tilde", "widetilde": "tilde", "dot": "dot", "ddot": "dot.double",
	"check": "caron", "breve": "breve", "acute": "acute", "grave": "grave",
	"overbrace": "overbrace", "underbrace": "underbrace",
}

// textCommands take a verbatim text argument.
var textCommands = map[string]bool{
	"text": true, "textrm": true, "textit": true, "textbf": true,
	"mbox": true, "textnormal": true,
}

// matrixDelimiters maps matrix environments to their Typst delim argument.
var matrixDelimiters = map[string]string{
	"matrix":  `#none`,
	"pmatrix": `"("`,
	"bmatrix": `"["`,
	"Bmatrix": `"{"`,
	"vmatrix": `"|"`,
	"Vmatrix": `"||"`,
}

// symbolReplacements maps single characters Typst math treats specially.
var symbolReplacements = map[string]string{
	"/":  "\\/",
	"\"": "\\\"",
	"~":  "",
	"#":  "\\#",
}
