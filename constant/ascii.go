package constant

// AsciiArtLogo is the banner printed above the root command help.
const AsciiArtLogo = `
             _ _         _        _
  __ _ _ __ (_) | ____ _| |_ __ _| | ___   __ _
 / _' | '_ \| | |/ / _' | __/ _' | |/ _ \ / _' |
| (_| | | | | |   < (_| | || (_| | | (_) | (_| |
 \__,_|_| |_|_|_|\_\__,_|\__\__,_|_|\___/ \__, |
                                          |___/`
