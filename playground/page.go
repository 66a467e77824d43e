package playground

var htmlPage = `<html>
<head>
	<title>JCPU Playground</title>
</head>
<body style="background-color: #1E1E1E; color: white;">
	<h1 style="display: inline-block;">JCPU Playground</h1>
	<button id="assembleButton" style="margin-left: 50px; height: 40px; width: 100px;">ASSEMBLE</button>
	<button id="formatButton" style="margin-left: 10px; height: 40px; width: 100px;">FORMAT</button>
	<br/>
	<textarea id="source" spellcheck="false" style="width: 980px; height: 300px; tab-size: 4; font-family: monospace; font-size: 1.1em; background-color: black; color: white; border: 2px solid white;"></textarea>
	<h2>Diagnostics</h2>
	<div id="diagnostics" style="width: 980px; padding: 10px; font-family: monospace; background-color: black; border: 2px solid white; min-height: 40px;"></div>
	<h2>Listing</h2>
	<pre id="listing" style="width: 980px; padding: 10px; background-color: black; border: 2px solid white; min-height: 100px; overflow-x: auto;"></pre>

	<script>
		var socket = null;
		var source = document.getElementById("source");

		// tabs start statements, so the tab key inserts one instead of moving focus
		source.onkeydown = function(event) {
			if (event.key == "Tab") {
				event.preventDefault();
				var start = source.selectionStart;
				source.value = source.value.substring(0, start) + "\t" + source.value.substring(source.selectionEnd);
				source.selectionStart = source.selectionEnd = start + 1;
			}
		};

		function connect() {
			socket = new WebSocket("ws://" + window.location.host + "/ws");
			socket.onmessage = function(event) {
				var data = JSON.parse(event.data);
				if (data.type == "result") {
					var lines = (data.diagnostics || []).map(function(d) {
						var severity = d.severity == 1 ? "error" : "warning";
						return (d.range.start.line + 1) + ":" + (d.range.start.character + 1) + ": " + severity + ": " + d.message;
					});
					document.getElementById("diagnostics").innerText = lines.join("\n");
					document.getElementById("listing").innerText = data.listing || "";
				} else if (data.type == "formatted") {
					source.value = data.text;
				} else if (data.type == "error") {
					document.getElementById("diagnostics").innerText = data.text;
				}
			};
			// when the socket closes, try to reconnect every 3 seconds
			socket.onclose = function() {
				setTimeout(connect, 3000);
			};
		}
		connect();

		document.getElementById("assembleButton").onclick = function() {
			socket.send(JSON.stringify({type: "assemble", text: source.value}));
		};

		document.getElementById("formatButton").onclick = function() {
			socket.send(JSON.stringify({type: "format", text: source.value}));
		};
	</script>
</body>
</html>`
